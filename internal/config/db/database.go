package db

import (
	"fmt"
	"log"

	"github.com/linskybing/corpsite-go/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func enums() []string {
	return []string{
		`DO $$ BEGIN CREATE TYPE application_status AS ENUM ('new', 'reviewing', 'shortlisted', 'interviewing', 'offered', 'hired', 'rejected', 'withdrawn'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE application_priority AS ENUM ('low', 'medium', 'high', 'urgent'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}
}

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

func Init() {
	var err error
	DB, err = Open(DSN())
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	log.Println("Database connected")
}

// Open connects to Postgres and creates the enum types used by the schema.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	for _, stmt := range enums() {
		if err := conn.Exec(stmt).Error; err != nil {
			log.Printf("Failed to create enum: %s, error: %v", stmt, err)
		}
	}
	return conn, nil
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
