package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/database"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// deps are the long-lived resources shared by solve and serve.
type deps struct {
	dict  *words.Dictionary // the game's allowed list
	store solver.WordStore  // the solver's dictionary
	db    *sql.DB
	close func() error
}

// openDeps opens the database and the configured word store, seeding both from dict.
func openDeps(ctx context.Context, c config.Config) (*deps, error) {
	dict, err := words.Default()
	if err != nil {
		return nil, fmt.Errorf("load default dictionary: %w", err)
	}

	db, err := database.OpenAndMigrate(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &deps{dict: dict, db: db}
	switch c.WordsStore {
	case "sqlite":
		st, err := words.NewSQLiteStore(ctx, db, dict.Weights())
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		d.store = st
		d.close = db.Close
	default:
		st, err := words.OpenFileStore(c.DictionaryFile, dict.Weights())
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		d.store = st
		d.close = func() error {
			ferr := st.Close()
			if err := db.Close(); err != nil {
				return err
			}
			return ferr
		}
	}
	log.Debug().Str("store", c.WordsStore).Str("db", c.DatabasePath).Msg("dependencies ready")
	return d, nil
}
