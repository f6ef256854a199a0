package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultSQLDir = "internal/infrastructure/migration/sql"

func main() {
	var (
		sqlDir   string
		logLevel string
	)
	flag.StringVar(&sqlDir, "dir", defaultSQLDir, "Directory holding the per-dialect migration scripts (create, list)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// create and list only touch the script directory
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(sqlDir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		for _, s := range mf.Scripts {
			log.Info("Migration created",
				zap.Uint("version", mf.Version),
				zap.String("dialect", s.Dialect),
				zap.String("up_file", s.UpPath),
				zap.String("down_file", s.DownPath),
			)
		}
		return

	case "list":
		for _, dialect := range migration.Dialects {
			names, err := migration.ListMigrations(sqlDir + "/" + dialect)
			if err != nil {
				log.Fatal("Failed to list migrations", zap.Error(err))
			}
			fmt.Printf("%s (%d)\n", dialect, len(names))
			for _, n := range names {
				fmt.Println("  -", n)
			}
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	m, err := migration.FromConfig(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("driver", cfg.Database.Driver),
	)

	switch command {
	case "up":
		err = m.Up()

	case "down":
		err = m.Down()

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		err = m.Steps(n)

	case "version":
		version, dirty, vErr := m.Version()
		if vErr != nil {
			log.Fatal("Failed to get version", zap.Error(vErr))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		err = m.Force(version)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

func printUsage() {
	fmt.Println(`Hesab database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version after a failed script
  create <name> [desc]  Create up/down scripts for every dialect
  list                  List migration scripts per dialect

Flags:
  -dir string           Script directory for create and list
  -log-level string     Log level: debug, info, warn, error (default: info)

The database comes from config.toml and HESAB_DATABASE_* variables.
The scripts applied are the ones embedded in the binary.`)
}
