package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/linskybing/formpilot/internal/config/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupPostgresForIntegration returns a migrated database and its teardown.
// TEST_DB_DSN points at an existing server; otherwise a throwaway postgres
// container is started.
func SetupPostgresForIntegration(ctx context.Context) (*gorm.DB, func(), error) {
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		return open(ctx, dsn, func() {})
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "formpilot",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres container: %w", err)
	}
	terminate := func() { _ = pg.Terminate(context.Background()) }

	host, err := pg.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		terminate()
		return nil, nil, err
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/formpilot?sslmode=disable", host, port.Port())
	return open(ctx, dsn, terminate)
}

func open(ctx context.Context, dsn string, terminate func()) (*gorm.DB, func(), error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	// the server may still be starting
	for i := 0; i < 10; i++ {
		if err = sqlDB.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = sqlDB.Close()
		terminate()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		terminate()
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		_ = sqlDB.Close()
		terminate()
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Migrator().DropTable(db.Models()...)
		_ = sqlDB.Close()
		terminate()
	}
	return conn, cleanup, nil
}
