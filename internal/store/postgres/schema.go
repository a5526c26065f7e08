package postgres

import (
	"context"
	"fmt"
	"strings"

	"pokedex/internal/store"
)

// DefaultDDL mirrors the sqlite schema in postgres dialect.
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
	type_id   INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
	type_name TEXT NOT NULL,
	colour    TEXT NOT NULL
);

CREATE TABLE ability (
	ability_id   INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
	ability_name TEXT NOT NULL
);

CREATE TABLE move (
	move_id   INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
	move_name TEXT NOT NULL,
	is_tm     BOOLEAN NOT NULL
);

CREATE TABLE pokemon_type (
	pokemon_type_id INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
	pokemon_id      INTEGER NOT NULL REFERENCES pokemon(pokemon_id) ON DELETE CASCADE,
	type_id         INTEGER NOT NULL REFERENCES type(type_id) ON DELETE CASCADE,
	CONSTRAINT uq_pokemon_type UNIQUE (pokemon_id, type_id)
);

CREATE TABLE pokemon_ability (
	pokemon_ability_id INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
	pokemon_id         INTEGER NOT NULL REFERENCES pokemon(pokemon_id) ON DELETE CASCADE,
	ability_id         INTEGER NOT NULL REFERENCES ability(ability_id) ON DELETE CASCADE,
	CONSTRAINT uq_pokemon_ability UNIQUE (pokemon_id, ability_id)
);

CREATE TABLE pokemon_move (
	pokemon_move_id INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
	pokemon_id      INTEGER NOT NULL REFERENCES pokemon(pokemon_id) ON DELETE CASCADE,
	move_id         INTEGER NOT NULL REFERENCES move(move_id) ON DELETE CASCADE,
	CONSTRAINT uq_pokemon_move UNIQUE (pokemon_id, move_id)
);
`

func (c *Client) InitializeSchema(ctx context.Context, ddl string) error {
	if strings.TrimSpace(ddl) == "" {
		ddl = DefaultDDL
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := len(store.TableNames) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", store.TableNames[i])
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("dropping table %s: %w", store.TableNames[i], err)
		}
	}

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("executing DDL: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}
