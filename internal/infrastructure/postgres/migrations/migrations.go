// Package migrations aplica el esquema embebido con goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/jhoicas/solarsync-api/pkg/logger"
)

//go:embed *.sql
var FS embed.FS

// Migrator ejecuta las migraciones embebidas contra una base PostgreSQL.
type Migrator struct {
	db  *sql.DB
	log *logger.Logger
}

// New prepara goose con el FS embebido y el dialecto postgres.
func New(db *sql.DB, log *logger.Logger) (*Migrator, error) {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return &Migrator{db: db, log: log.Component("migrations")}, nil
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up(ctx context.Context) error {
	from, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		m.log.Error().Err(err).Msg("migración fallida")
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	to, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.log.Info().Int64("from_version", from).Int64("to_version", to).Msg("migraciones aplicadas")
	return nil
}

// Down revierte steps migraciones.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, m.db, "."); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	m.log.Info().Int("steps", steps).Msg("migraciones revertidas")
	return nil
}

// Status imprime el estado de cada migración (salida de goose).
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

// Version versión aplicada actualmente.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return v, nil
}
