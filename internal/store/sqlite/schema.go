package sqlite

import (
	"context"
	"fmt"
	"strings"

	"pokedex/internal/store"
)

// DefaultDDL is the schema used when no schema file is supplied. The junction
// tables carry UNIQUE pair constraints so a duplicate association is rejected
// by the store even if it slips past the transformer.
const DefaultDDL = `
CREATE TABLE pokemon (
	pokemon_id     INTEGER NOT NULL PRIMARY KEY,
	pokemon_name   TEXT NOT NULL,
	gen_number     INTEGER NOT NULL,
	base_hp        INTEGER NOT NULL,
	base_attack    INTEGER NOT NULL,
	base_defense   INTEGER NOT NULL,
	base_sp_attack INTEGER NOT NULL,
	base_sp_def    INTEGER NOT NULL,
	base_speed     INTEGER NOT NULL,
	description    TEXT NOT NULL,
	evolution      TEXT NOT NULL
);

CREATE TABLE type (
	type_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	type_name TEXT NOT NULL,
	colour    TEXT NOT NULL
);

CREATE TABLE ability (
	ability_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	ability_name TEXT NOT NULL
);

CREATE TABLE move (
	move_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	move_name TEXT NOT NULL,
	is_tm     INTEGER NOT NULL
);

CREATE TABLE pokemon_type (
	pokemon_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
	pokemon_id      INTEGER NOT NULL,
	type_id         INTEGER NOT NULL,
	FOREIGN KEY (pokemon_id) REFERENCES pokemon(pokemon_id) ON DELETE CASCADE,
	FOREIGN KEY (type_id) REFERENCES type(type_id) ON DELETE CASCADE,
	CONSTRAINT uq_pokemon_type UNIQUE (pokemon_id, type_id)
);

CREATE TABLE pokemon_ability (
	pokemon_ability_id INTEGER PRIMARY KEY AUTOINCREMENT,
	pokemon_id         INTEGER NOT NULL,
	ability_id         INTEGER NOT NULL,
	FOREIGN KEY (pokemon_id) REFERENCES pokemon(pokemon_id) ON DELETE CASCADE,
	FOREIGN KEY (ability_id) REFERENCES ability(ability_id) ON DELETE CASCADE,
	CONSTRAINT uq_pokemon_ability UNIQUE (pokemon_id, ability_id)
);

CREATE TABLE pokemon_move (
	pokemon_move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	pokemon_id      INTEGER NOT NULL,
	move_id         INTEGER NOT NULL,
	FOREIGN KEY (pokemon_id) REFERENCES pokemon(pokemon_id) ON DELETE CASCADE,
	FOREIGN KEY (move_id) REFERENCES move(move_id) ON DELETE CASCADE,
	CONSTRAINT uq_pokemon_move UNIQUE (pokemon_id, move_id)
);
`

// InitializeSchema drops all pipeline tables and recreates them from ddl.
// Foreign key enforcement is suspended for the drops so the order of
// pre-existing tables cannot wedge the rebuild.
func (c *Client) InitializeSchema(ctx context.Context, ddl string) error {
	if strings.TrimSpace(ddl) == "" {
		ddl = DefaultDDL
	}

	if _, err := c.db.ExecContext(ctx, "PRAGMA foreign_keys = OFF;"); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}

	for i := len(store.TableNames) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s;", store.TableNames[i])
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("dropping table %s: %w", store.TableNames[i], err)
		}
	}

	if _, err := c.db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
