package postgres

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration found at the root of fsys.
func (p *Postgres) Migrate(ctx context.Context, fsys fs.FS) error {
	db := stdlib.OpenDBFromPool(p.Pool)
	defer db.Close()

	goose.SetBaseFS(fsys)

	err := goose.SetDialect("pgx")
	if err != nil {
		return fmt.Errorf("Postgres - Migrate - goose.SetDialect: %w", err)
	}

	err = goose.UpContext(ctx, db, ".")
	if err != nil {
		return fmt.Errorf("Postgres - Migrate - goose.UpContext: %w", err)
	}

	return nil
}
