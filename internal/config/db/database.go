package db

import (
	"fmt"

	"github.com/linskybing/formpilot/internal/config"
	"github.com/linskybing/formpilot/internal/domain/abtest"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/internal/domain/optimization"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN builds the postgres connection string from the loaded configuration.
func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
		config.DbSSLMode,
	)
}

// Init opens the connection and stores it in DB.
func Init() error {
	conn, err := gorm.Open(postgres.Open(DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	DB = conn
	return nil
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&form.Form{},
		&optimization.Record{},
		&analytics.View{},
		&analytics.Interaction{},
		&analytics.Submission{},
		&abtest.ABTest{},
	}
}

// Migrate creates or updates the schema.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
