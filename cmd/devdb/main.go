package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/gatesim/internal/devdb"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable gatesim database container with the environment variables from the .env file.
Prints the DB_* variables a gatesim server needs to reach it, then waits for a signal.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	opts, err := devdb.OptionsFromEnv()
	if err != nil {
		log.Fatalf("Invalid database container settings: %v\n", err)
	}

	ctx := context.Background()
	db, err := devdb.Start(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to start database container: %v\n", err)
	}
	for _, kv := range db.Env() {
		fmt.Println(kv)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	db.Terminate(ctx)
}
