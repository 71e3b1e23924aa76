// Starts the disposable Postgres test container and keeps it running until
// interrupted. Useful for developing against a networked database locally.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/docuchat/docuchat/tests/helpers"
	"github.com/joho/godotenv"
)

func main() {
	var envFilename string
	var showHelp bool
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.BoolVar(&showHelp, "h", false, "show usage")
	flag.Parse()

	usage := `
Run the docuchat dev database container with environment variables from a .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
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

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	// The startup goroutine hands the container over this channel; the
	// signal path never reads shared state directly.
	started := make(chan *helpers.TestContainers, 1)
	go func() {
		tc, err := helpers.CreatePostgresContainer(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		log.Printf("Set DB_TYPE=postgres DB_HOST=%s DB_PORT=%s to use it\n", tc.DBHost, tc.DBPort)
		started <- tc
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	select {
	case tc := <-started:
		tc.Terminate(nil)
	default:
		log.Println("Container startup still in progress, nothing to terminate")
	}
}
