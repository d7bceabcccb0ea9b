package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HarvestConfig struct {
	CompaniesFile string `mapstructure:"companies_file"`
	// delay after each company's store write, a courtesy to free ATS endpoints
	CompanyDelay            time.Duration `mapstructure:"company_delay"`
	RetentionDays           int           `mapstructure:"retention_days"`
	AtsMaxRequestsPerSecond float32       `mapstructure:"ats_max_requests_per_second"`
	// cron expression; empty means a single pass and exit
	Cron              string `mapstructure:"cron"`
	PublishBatchSize  int    `mapstructure:"publish_batch_size"`
	PublishWindowDays int    `mapstructure:"publish_window_days"`
}

func (config HarvestConfig) validate() error {

	if config.CompaniesFile == "" {
		return fmt.Errorf("missing variable: companies_file")
	}

	if config.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be greater than zero")
	}

	return nil
}

func (config HarvestConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("harvest.companies_file", "COMPANIES_FILE")
	if err != nil {
		return err
	}

	err = viper.BindEnv("harvest.retention_days", "RETENTION_DAYS")
	if err != nil {
		return err
	}

	return viper.BindEnv("harvest.cron", "HARVEST_CRON")
}
