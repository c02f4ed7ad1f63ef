package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/kuedapur/backend-go/internal/cache"
	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/repository/postgres"
	"github.com/kuedapur/backend-go/internal/service"
	"github.com/kuedapur/backend-go/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*postgres.DB, error) {
	db, err := postgres.NewDBFromURL("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func runSnapshots(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := config.Load()
	svc := service.NewSnapshotService(
		postgres.NewRecipeRepository(db),
		postgres.NewSnapshotRepository(db),
		postgres.NewHppAlertRepository(db),
		postgres.NewNotificationRepository(db),
		cfg.Business,
	)

	result, err := svc.RunDailySnapshots(c.Context)
	if err != nil {
		return fmt.Errorf("snapshot run failed: %w", err)
	}

	fmt.Printf("snapshots: %d processed, %d created, %d skipped, %d failed\n",
		result.Processed, result.Created, result.Skipped, len(result.Failures))
	return nil
}

func runHppAlerts(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := config.Load()
	svc := service.NewSnapshotService(
		postgres.NewRecipeRepository(db),
		postgres.NewSnapshotRepository(db),
		postgres.NewHppAlertRepository(db),
		postgres.NewNotificationRepository(db),
		cfg.Business,
	)

	raised, err := svc.ScanAlerts(c.Context)
	if err != nil {
		return fmt.Errorf("hpp alert scan failed: %w", err)
	}

	fmt.Printf("hpp-alerts: %d raised\n", raised)
	return nil
}

func runInventoryScan(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := config.Load()
	svc := service.NewInventoryService(
		postgres.NewIngredientRepository(db),
		postgres.NewInventoryAlertRepository(db),
		postgres.NewNotificationRepository(db),
		cache.NewNoopInventoryDashboardCache(),
		cfg.Business,
	)

	result, err := svc.Scan(c.Context)
	if err != nil {
		return fmt.Errorf("inventory scan failed: %w", err)
	}

	fmt.Printf("inventory-scan: %d checked, %d raised, %d resolved\n",
		result.Checked, result.Raised, result.Resolved)
	return nil
}

func runPurgeNotifications(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewNotificationService(postgres.NewNotificationRepository(db))
	deleted, err := svc.PurgeExpired(c.Context)
	if err != nil {
		return fmt.Errorf("notification purge failed: %w", err)
	}

	fmt.Printf("purge-notifications: %d deleted\n", deleted)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	logger.SetLevel("release")

	app := &cli.App{
		Name:  "jobs",
		Usage: "Scheduled maintenance jobs",
		Commands: []*cli.Command{
			{
				Name:   "snapshot",
				Usage:  "Take today's cost snapshot for all active recipes",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runSnapshots,
			},
			{
				Name:   "hpp-alerts",
				Usage:  "Re-evaluate cost change alerts from the latest snapshots",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runHppAlerts,
			},
			{
				Name:   "inventory-scan",
				Usage:  "Scan ingredient stock levels and raise or resolve alerts",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runInventoryScan,
			},
			{
				Name:   "purge-notifications",
				Usage:  "Delete expired notifications",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runPurgeNotifications,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
