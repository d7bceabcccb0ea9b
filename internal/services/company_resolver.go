package services

import (
	"context"
	"fmt"
	"time"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/acrossjobs/harvester/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type companyRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entities.Company, error)
	GetByName(ctx context.Context, name string) (*entities.Company, error)
	GetByATS(ctx context.Context, platform entities.AtsPlatform, identifier string) (*entities.Company, error)
	Create(ctx context.Context, company *entities.Company) error
	UpdateLastSync(ctx context.Context, companyID uint, t time.Time) error
	GetAllNames(ctx context.Context) ([]string, error)
}

type Resolution struct {
	CompanyID  uint
	WasCreated bool
}

// CompanyResolver maps a roster entry to a stored company, creating an
// unverified record when nothing matches.
type CompanyResolver struct {
	companies companyRepository
	cache     *gocache.Cache
}

func NewCompanyResolver(companies companyRepository) *CompanyResolver {
	return &CompanyResolver{
		companies: companies,
		cache:     gocache.New(30*time.Minute, time.Hour),
	}
}

func (r *CompanyResolver) Resolve(ctx context.Context, name string,
	platform entities.AtsPlatform, identifier string) (Resolution, error) {

	slug := entities.Slugify(name)

	if cached, found := r.cache.Get(slug); found {
		return Resolution{CompanyID: cached.(uint)}, nil
	}

	company, err := r.lookup(ctx, name, slug, platform, identifier)
	if err != nil {
		return Resolution{}, err
	}

	if company != nil {
		r.cacheID(slug, company.ID)
		return Resolution{CompanyID: company.ID}, nil
	}

	company = &entities.Company{
		Name:          name,
		Slug:          slug,
		LogoURL:       fmt.Sprintf("https://logo.clearbit.com/%s.com", slug),
		WebsiteURL:    fmt.Sprintf("https://www.%s.com", slug),
		AtsPlatform:   platform,
		AtsIdentifier: identifier,
		Active:        true,
		AutoCreated:   true,
		Verified:      false,
	}
	if err = r.companies.Create(ctx, company); err != nil {
		return Resolution{}, err
	}

	log.Infof("auto-created company %v with slug %v", name, slug)
	r.cacheID(slug, company.ID)
	return Resolution{CompanyID: company.ID, WasCreated: true}, nil
}

func (r *CompanyResolver) MarkSynced(ctx context.Context, companyID uint) {
	if err := r.companies.UpdateLastSync(ctx, companyID, time.Now()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to update last sync time for company %v: %v", companyID, err)
	}
}

// WarnAboutDuplicates logs company names that likely refer to the same
// company, so auto-created records can be merged by hand.
func (r *CompanyResolver) WarnAboutDuplicates(ctx context.Context) {

	names, err := r.companies.GetAllNames(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get company names: %v", err)
		return
	}

	for _, group := range FindDuplicateGroups(names) {
		log.Warnf("companies look like duplicates: %v", group)
	}
}

func (r *CompanyResolver) lookup(ctx context.Context, name, slug string,
	platform entities.AtsPlatform, identifier string) (*entities.Company, error) {

	company, err := r.companies.GetBySlug(ctx, slug)
	if err != nil || company != nil {
		return company, err
	}

	company, err = r.companies.GetByName(ctx, name)
	if err != nil || company != nil {
		return company, err
	}

	return r.companies.GetByATS(ctx, platform, identifier)
}

func (r *CompanyResolver) cacheID(slug string, id uint) {
	if err := r.cache.Add(slug, id, gocache.DefaultExpiration); err != nil {
		log.Errorf("failed to cache company id: %v", err)
	}
}
