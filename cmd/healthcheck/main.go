// Healthcheck probe for container orchestration: connects to the metadata
// store and the model runtime and exits non-zero when either is down.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/database"
	"github.com/docuchat/docuchat/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
}
