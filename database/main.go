package database

import (
	"context"
	"database/sql"
	"log"
	"runtime"

	"detector-go/common"
	"detector-go/database/schemas"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var DB *bun.DB

func InitDB() {
	config := common.Config
	if config == nil || config.DB == nil {
		log.Panic("database configuration missing, check config.json")
	}

	DB = bun.NewDB(sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithAddr(config.DB.IP),
		pgdriver.WithUser(config.DB.User),
		pgdriver.WithPassword(config.DB.Password),
		pgdriver.WithDatabase(config.DB.Name),
		pgdriver.WithTLSConfig(nil),
	)), pgdialect.New())

	maxOpenConns := 4 * runtime.GOMAXPROCS(0)
	DB.SetMaxOpenConns(maxOpenConns)
	DB.SetMaxIdleConns(maxOpenConns)

	// create database structure if doesn't exist
	if err := createSchema(); err != nil {
		log.Println("Failed to create schema")
		log.Panic(err)
	}
}

func createSchema() error {
	models := []any{
		(*schemas.Player)(nil),
		(*schemas.Report)(nil),
		(*schemas.PredictionFeedback)(nil),
		(*schemas.Prediction)(nil),
	}

	for _, model := range models {
		if _, err := DB.NewCreateTable().IfNotExists().Model(model).Exec(context.Background()); err != nil {
			return err
		}
	}
	return nil
}
