package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/site-sections-backend/config"
)

type Database struct {
	sectionRepo *SectionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		sectionRepo: NewSectionRepo(db),
	}
}

func (d Database) SectionRepo() *SectionRepo {
	return d.sectionRepo
}

// Open connects to the primary database and registers the configured read
// replicas. Queries go to a replica, writes and transactions to the primary.
func Open(settings config.DatabaseSettings) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector(settings.DSN(settings.Host)), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if len(settings.ReplicaHosts) > 0 {
		replicas := make([]gorm.Dialector, 0, len(settings.ReplicaHosts))
		for _, host := range settings.ReplicaHosts {
			replicas = append(replicas, dialector(settings.DSN(host)))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: true,
		}).
			SetConnMaxIdleTime(time.Hour).
			SetMaxIdleConns(5).
			SetMaxOpenConns(20))
		if err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("testing database connection: %w", err)
	}
	return db, nil
}

func dialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}
