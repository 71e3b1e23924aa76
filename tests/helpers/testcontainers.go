// testcontainers.go
//
// Dev/integration harness: starts a disposable Postgres for running the
// backend against a real networked database instead of the sqlite default.

package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers holds the running containers of one harness instance.
type TestContainers struct {
	DBContainer testcontainers.Container
	DBHost      string
	DBPort      string
}

// Terminate stops everything the harness started.
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database container: %v", err)
		}
	}
}

// CreatePostgresContainer starts a Postgres container and reports its mapped
// host/port. Image and credentials come from the environment with sane
// defaults, matching the backend's DB_* configuration surface.
func CreatePostgresContainer(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	image := getenv("DB_IMAGE", "postgres:16-alpine")
	user := getenv("DB_USER", "docuchat")
	password := getenv("DB_PASSWORD", "docuchat")
	database := getenv("DB_DATABASE", "docuchat")

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
				"POSTGRES_DB":       database,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database container: %w", err)
	}
	tc.DBContainer = container

	host, err := container.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to resolve container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to resolve mapped port: %w", err)
	}

	tc.DBHost = host
	tc.DBPort = mapped.Port()

	logMessage(t, "Postgres ready at %s:%s (db=%s user=%s)", tc.DBHost, tc.DBPort, database, user)

	return tc, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...interface{}) {
	if t != nil {
		t.Logf(format, args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}
