// migrate administra el esquema de la base y los datos iniciales.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down --steps 1
//	go run ./cmd/migrate status
//	go run ./cmd/migrate seed
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/solarsync-api/internal/application/bootstrap"
	"github.com/jhoicas/solarsync-api/internal/infrastructure/postgres"
	"github.com/jhoicas/solarsync-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/solarsync-api/pkg/config"
	"github.com/jhoicas/solarsync-api/pkg/logger"
	"github.com/jhoicas/solarsync-api/pkg/password"
)

var steps int

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones y datos iniciales de SolarSync",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones",
		RunE:  withDB(runDown),
	}
	downCmd.Flags().IntVarP(&steps, "steps", "n", 1, "Número de migraciones a revertir")

	rootCmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Aplica las migraciones pendientes", RunE: withDB(runUp)},
		downCmd,
		&cobra.Command{Use: "status", Short: "Muestra el estado de las migraciones", RunE: withDB(runStatus)},
		&cobra.Command{Use: "seed", Short: "Crea los planes base y el administrador inicial", RunE: withDB(runSeed)},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env recursos compartidos por los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
	db   *sql.DB
}

func withDB(run func(ctx context.Context, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		db := postgres.OpenSQL(pool)
		defer db.Close()

		return run(ctx, &env{cfg: cfg, log: log, pool: pool, db: db})
	}
}

func runUp(ctx context.Context, e *env) error {
	m, err := migrations.New(e.db, e.log)
	if err != nil {
		return err
	}
	return m.Up(ctx)
}

func runDown(ctx context.Context, e *env) error {
	if steps < 1 {
		return fmt.Errorf("--steps debe ser al menos 1")
	}
	m, err := migrations.New(e.db, e.log)
	if err != nil {
		return err
	}
	return m.Down(ctx, steps)
}

func runStatus(ctx context.Context, e *env) error {
	m, err := migrations.New(e.db, e.log)
	if err != nil {
		return err
	}
	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nVersión actual: %d\n\n", version)
	return m.Status(ctx)
}

func runSeed(ctx context.Context, e *env) error {
	seeder := bootstrap.NewSeeder(
		postgres.NewUserRepository(e.pool),
		postgres.NewPlanRepository(e.pool),
		password.NewBcryptHasher(0),
		e.log,
	)
	created, err := seeder.SeedPlans(ctx, bootstrap.DefaultPlans())
	if err != nil {
		return err
	}
	e.log.Info().Int("plans_created", created).Msg("planes base listos")

	if e.cfg.Admin.Email == "" {
		e.log.Warn().Msg("ADMIN_EMAIL vacío: no se crea administrador")
		return nil
	}
	if _, err := seeder.SeedAdmin(ctx, e.cfg.Admin.Email, e.cfg.Admin.Password, ""); err != nil {
		return err
	}
	return nil
}
