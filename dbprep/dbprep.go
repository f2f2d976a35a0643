// ariadne - a Sudoku solver that keeps the thread of its search.
// Copyright (C) 2024-2026 the ariadne authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// Package dbprep brings the Postgres schema up to date before the
// storage layer opens for business.  The migrations are compiled
// into the binary, so deployments need no extra files on disk.
package dbprep

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrateUrl computes the database URL in the form the migration
// driver wants: same DATABASE_URL the storage layer connects with,
// but with the driver-selecting scheme.
func migrateUrl() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/ariadne?sslmode=disable"
	}
	if rest, ok := strings.CutPrefix(url, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(url, "postgres://"); ok {
		return "pgx5://" + rest
	}
	return url
}

// newMigrator builds a migrator over the embedded migration files.
// Callers own the close.
func newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("Couldn't read embedded migrations: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateUrl())
	if err != nil {
		return nil, fmt.Errorf("Couldn't open database for migration: %v", err)
	}
	return m, nil
}

// EnsureSchema migrates the database up to the current schema.  An
// already-current database is not an error.
func EnsureSchema() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Couldn't install data schema: %v", err)
	}
	return nil
}

// RemoveSchema tears the schema all the way down.  An empty database
// is not an error.
func RemoveSchema() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Couldn't remove tables: %v", err)
	}
	return nil
}

// SchemaVersion returns the version of the database, 0 when no
// migration has ever run.
func SchemaVersion() (uint, error) {
	m, err := newMigrator()
	if err != nil {
		return 0, err
	}
	defer m.Close()
	version, _, err := m.Version()
	if err == migrate.ErrNilVersion {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("Couldn't get data schema version: %v", err)
	}
	return version, nil
}
