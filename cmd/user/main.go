package main

import (
	"chat-relay/config"
	"chat-relay/db"
	"chat-relay/models"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
)

func usage() {
	flag.Usage()
	fmt.Printf("commands:\n\tadd <username> <password>\n\tcheck <username> <password>\n")
}

func main() {
	configPath := flag.String("config", "", "Path to app config")
	flag.Parse()

	if configPath == nil || *configPath == "" {
		usage()
		os.Exit(1)
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

	if cmd == "add" {
		if len(flag.Args()) < 3 {
			log.Println("missing arguments")
			usage()
			os.Exit(1)
		}

		username := flag.Arg(1)
		password := flag.Arg(2)

		existing, err := models.UserByUsername(ctx, db, username)
		if err != nil {
			log.Fatalf("could not check for existing user: %s", err)
		}
		if existing != nil {
			log.Fatalf("user %s already exists", username)
		}

		if _, err := models.CreateUser(ctx, db, username, password); err != nil {
			log.Fatalf("could not add user: %s", err)
		}

		log.Printf("Added user %s", username)
	} else if cmd == "check" {
		if len(flag.Args()) < 3 {
			log.Println("missing arguments")
			usage()
			os.Exit(1)
		}

		username := flag.Arg(1)
		password := flag.Arg(2)

		user, err := models.UserByUsername(ctx, db, username)
		if err != nil {
			log.Fatalf("could not get user: %s", err)
		}
		if user == nil {
			log.Fatalf("no user named %s", username)
		}

		if user.CheckPassword(password) {
			log.Printf("password for %s is valid", username)
		} else {
			log.Fatalf("password for %s is NOT valid", username)
		}
	} else {
		usage()
		os.Exit(1)
	}
}
