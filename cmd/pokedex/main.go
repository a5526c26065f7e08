package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Pokedex ETL pipeline and database tools",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(runCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
