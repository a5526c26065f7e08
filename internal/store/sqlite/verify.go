package sqlite

import (
	"context"
	"fmt"

	"pokedex/internal/store"
)

// Verify counts the rows of every pipeline table for post-load sanity
// checking.
func (c *Client) Verify(ctx context.Context) (store.Counts, error) {
	counts := store.Counts{}
	for _, table := range store.TableNames {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting rows of %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
