package repositories

import (
	"fmt"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Company{})
	if err != nil {
		return fmt.Errorf("failed to migrate Company entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	// the apply_link unique index carries the upsert semantics; it has to
	// exist before the first write
	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_apply_link ON jobs (apply_link); " +
		"CREATE INDEX IF NOT EXISTS idx_companies_ats ON companies (ats_platform, ats_identifier);").
		Error; err != nil {
		return fmt.Errorf("failed to create job index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
