package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// CompanySource is one roster entry: a company and where its postings live.
type CompanySource struct {
	Name          string `mapstructure:"name" validate:"required"`
	Platform      string `mapstructure:"platform" validate:"required,oneof=greenhouse lever ashby workday"`
	Identifier    string `mapstructure:"identifier" validate:"required"`
	WorkdayDomain string `mapstructure:"workday_domain" validate:"required_if=Platform workday"`
	WorkdaySiteID string `mapstructure:"workday_site_id" validate:"required_if=Platform workday"`
}

// LoadCompanies reads the harvest roster from its own yaml file, so the
// company list can change without touching the service config.
func LoadCompanies(file string) ([]CompanySource, error) {

	v := viper.New()
	v.SetConfigFile(file)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading companies file: %w", err)
	}

	var roster struct {
		Companies []CompanySource `mapstructure:"companies"`
	}
	if err := v.Unmarshal(&roster); err != nil {
		return nil, err
	}

	if len(roster.Companies) == 0 {
		return nil, fmt.Errorf("companies file %v lists no companies", file)
	}

	validate := validator.New()
	for i, company := range roster.Companies {
		if err := validate.Struct(company); err != nil {
			return nil, fmt.Errorf("invalid company entry %d (%v): %w", i, company.Name, err)
		}
	}

	return roster.Companies, nil
}
