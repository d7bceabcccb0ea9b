package repositories

import (
	"context"
	"time"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Companies struct {
	db *gorm.DB
}

func NewCompaniesRepository(db *gorm.DB) *Companies {
	return &Companies{db: db}
}

func (repo *Companies) GetBySlug(ctx context.Context, slug string) (*entities.Company, error) {

	var company entities.Company
	err := repo.db.WithContext(ctx).First(&company, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (repo *Companies) GetByName(ctx context.Context, name string) (*entities.Company, error) {

	var company entities.Company
	err := repo.db.WithContext(ctx).First(&company, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (repo *Companies) GetByATS(ctx context.Context, platform entities.AtsPlatform,
	identifier string) (*entities.Company, error) {

	var company entities.Company
	err := repo.db.WithContext(ctx).
		First(&company, "ats_platform = ? AND ats_identifier = ?", platform, identifier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (repo *Companies) Create(ctx context.Context, company *entities.Company) error {
	return repo.db.WithContext(ctx).Create(company).Error
}

func (repo *Companies) UpdateLastSync(ctx context.Context, companyID uint, t time.Time) error {
	return repo.db.WithContext(ctx).Model(&entities.Company{}).Where("id = ?", companyID).
		Update("last_sync_at", t.UTC()).Error
}

func (repo *Companies) GetActive(ctx context.Context) ([]entities.Company, error) {

	var companies []entities.Company
	if err := repo.db.WithContext(ctx).Find(&companies, "active = ?", true).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (repo *Companies) GetAllNames(ctx context.Context) ([]string, error) {

	var names []string
	err := repo.db.WithContext(ctx).Model(&entities.Company{}).Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
