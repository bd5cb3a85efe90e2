package main

import (
	"chat-relay/cmd/migrate/migrations"
	"chat-relay/config"
	"chat-relay/db"
	"chat-relay/models"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/uptrace/bun/dbfixture"
	"github.com/uptrace/bun/migrate"
)

func usage() {
	flag.Usage()
	log.Fatalf("Usage: migrate --config <config path> <init|up|down|status|mark_applied|fixtures>\n")
}

func main() {
	configPath := flag.String("config", "", "Path to app config")
	flag.Parse()

	if configPath == nil || *configPath == "" {
		usage()
	}

	conf, err := config.FromFile(*configPath)
	if err != nil {
		log.Fatalf("could not parse config: %s", err)
	}

	db, err := db.Connect(&conf.DBConfig)
	if err != nil {
		log.Fatalf("could not connect to DB: %s", err)
	}

	ctx := context.Background()
	cmd := flag.Arg(0)
	migrator := migrate.NewMigrator(db, migrations.Migrations)

	if cmd == "" {
		log.Println("Missing command")
		usage()
	}

	if cmd == "init" {
		if err := migrator.Init(ctx); err != nil {
			log.Fatalf("could not init migrations: %s", err)
		}
	} else if cmd == "up" {
		group, err := migrator.Migrate(ctx)
		if err != nil {
			log.Fatalf("could not migrate: %s", err)
		}

		if group.ID == 0 {
			fmt.Printf("there are no new migrations to run\n")
			return
		}

		fmt.Printf("migrated to %s\n", group)
	} else if cmd == "down" {
		group, err := migrator.Rollback(ctx)
		if err != nil {
			log.Fatalf("could not rollback: %s", err)
		}

		if group.ID == 0 {
			fmt.Printf("there are no groups to roll back\n")
			return
		}

		fmt.Printf("rolled back %s\n", group)
	} else if cmd == "status" {
		ms, err := migrator.MigrationsWithStatus(ctx)
		if err != nil {
			log.Fatalf("could not get migration status: %s", err)
		}

		fmt.Printf("migrations: %s\n", ms)
		fmt.Printf("unapplied migrations: %s\n", ms.Unapplied())
		fmt.Printf("last migration group: %s\n", ms.LastGroup())
	} else if cmd == "mark_applied" {
		group, err := migrator.Migrate(ctx, migrate.WithNopMigration())
		if err != nil {
			log.Fatalf("could not mark migrations as applied: %s", err)
		}

		if group.ID == 0 {
			fmt.Printf("there are no new migrations to mark as applied\n")
			return
		}

		fmt.Printf("marked as applied %s\n", group)
	} else if cmd == "fixtures" {
		// Dev accounts; see models/fixtures.yml.
		db.RegisterModel((*models.User)(nil))
		fixture := dbfixture.New(db, dbfixture.WithTruncateTables())
		if err := fixture.Load(ctx, os.DirFS("models"), "fixtures.yml"); err != nil {
			log.Fatalf("could not load fixtures: %s", err)
		}

		fmt.Printf("loaded fixtures\n")
	} else {
		log.Printf("unknown command %q", cmd)
		usage()
	}
}
