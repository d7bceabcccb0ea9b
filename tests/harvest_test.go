package tests

import (
	"context"
	"testing"
	"time"

	"github.com/acrossjobs/harvester/internal/clients/ats"
	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/acrossjobs/harvester/internal/repositories"
	"github.com/acrossjobs/harvester/internal/services"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stripeSource = ats.Source{Name: "Stripe", Platform: entities.PlatformGreenhouse, Identifier: "stripe"}

func clearDb() {
	dbCtx.DB.Exec("DELETE from jobs WHERE TRUE")
	dbCtx.DB.Exec("DELETE from companies WHERE TRUE")
}

func newHarvester(t *testing.T, boards *mockBoards, sources ...ats.Source) *services.Harvester {

	companies := repositories.NewCompaniesRepository(dbCtx.DB)
	jobs := repositories.NewJobsRepository(dbCtx.DB)

	harvester, err := services.NewHarvester(EventBus.New(), boards,
		services.NewCompanyResolver(companies), jobs, sources, 0, 30)
	require.NoError(t, err)
	return harvester
}

func countJobs(t *testing.T) int64 {
	var count int64
	require.NoError(t, dbCtx.DB.Model(&entities.Job{}).Count(&count).Error)
	return count
}

func Test_Harvest_DoubleRunIsIdempotent(t *testing.T) {

	defer clearDb()

	boards := &mockBoards{postings: map[string][]entities.Posting{
		"Stripe": {
			{Title: "Backend Engineer", Location: "Remote", ApplyLink: "https://boards.greenhouse.io/stripe/1"},
			{Title: "Account Executive", Location: "New York", ApplyLink: "https://boards.greenhouse.io/stripe/2"},
		},
	}}
	harvester := newHarvester(t, boards, stripeSource)

	_, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)
	_, err = harvester.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), countJobs(t))

	active, err := repositories.NewJobsRepository(dbCtx.DB).GetActive(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	companies, err := repositories.NewCompaniesRepository(dbCtx.DB).GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "stripe", companies[0].Slug)
	assert.True(t, companies[0].AutoCreated)
	assert.NotNil(t, companies[0].LastSyncAt)
}

func Test_Harvest_SameApplyLinkUpdatesInPlace(t *testing.T) {

	defer clearDb()

	boards := &mockBoards{postings: map[string][]entities.Posting{
		"Stripe": {{Title: "Backend Engineer", Location: "Remote", ApplyLink: "https://boards.greenhouse.io/stripe/1"}},
	}}
	harvester := newHarvester(t, boards, stripeSource)

	_, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)

	boards.postings["Stripe"] = []entities.Posting{
		{Title: "Senior Backend Engineer", Location: "Remote", ApplyLink: "https://boards.greenhouse.io/stripe/1"},
	}
	_, err = harvester.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), countJobs(t))

	var job entities.Job
	require.NoError(t, dbCtx.DB.Where("apply_link = ?", "https://boards.greenhouse.io/stripe/1").First(&job).Error)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, entities.LevelSenior, *job.ExperienceLevel)
}

func Test_Harvest_VanishedPostingsAreDeactivated(t *testing.T) {

	defer clearDb()

	boards := &mockBoards{postings: map[string][]entities.Posting{
		"Stripe": {
			{Title: "Backend Engineer", Location: "Remote", ApplyLink: "https://boards.greenhouse.io/stripe/1"},
			{Title: "Data Analyst", Location: "Remote", ApplyLink: "https://boards.greenhouse.io/stripe/2"},
		},
	}}
	harvester := newHarvester(t, boards, stripeSource)

	_, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)

	boards.postings["Stripe"] = boards.postings["Stripe"][:1]
	summary, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.MarkedExpired)

	var vanished entities.Job
	require.NoError(t, dbCtx.DB.Where("apply_link = ?", "https://boards.greenhouse.io/stripe/2").First(&vanished).Error)
	assert.False(t, vanished.IsActive)

	var company entities.Company
	require.NoError(t, dbCtx.DB.Where("slug = ?", "stripe").First(&company).Error)
	links, err := repositories.NewJobsRepository(dbCtx.DB).ActiveLinksByCompany(context.Background(), company.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://boards.greenhouse.io/stripe/1"}, links)
}

func Test_Companies_UpdateLastSyncStoresGivenTime(t *testing.T) {

	defer clearDb()

	companies := repositories.NewCompaniesRepository(dbCtx.DB)
	company := &entities.Company{Name: "Stripe", Slug: "stripe", AtsPlatform: entities.PlatformGreenhouse, AtsIdentifier: "stripe"}
	require.NoError(t, companies.Create(context.Background(), company))

	syncedAt := time.Now().Add(-2 * time.Hour)
	require.NoError(t, companies.UpdateLastSync(context.Background(), company.ID, syncedAt))

	stored, err := companies.GetBySlug(context.Background(), "stripe")
	require.NoError(t, err)
	require.NotNil(t, stored.LastSyncAt)
	assert.WithinDuration(t, syncedAt.UTC(), stored.LastSyncAt.UTC(), time.Second)
}

func Test_Harvest_RetentionBoundary(t *testing.T) {

	defer clearDb()

	boards := &mockBoards{postings: map[string][]entities.Posting{"Stripe": {}}}
	harvester := newHarvester(t, boards, stripeSource)

	companies := repositories.NewCompaniesRepository(dbCtx.DB)
	company := &entities.Company{Name: "Stripe", Slug: "stripe", AtsPlatform: entities.PlatformGreenhouse, AtsIdentifier: "stripe"}
	require.NoError(t, companies.Create(context.Background(), company))

	insertInactiveJob(t, company.ID, "https://boards.greenhouse.io/stripe/old", 31)
	insertInactiveJob(t, company.ID, "https://boards.greenhouse.io/stripe/recent", 29)

	summary, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.Deleted)
	assert.Equal(t, int64(1), countJobs(t))

	var kept entities.Job
	require.NoError(t, dbCtx.DB.Where("apply_link = ?", "https://boards.greenhouse.io/stripe/recent").First(&kept).Error)
}

func insertInactiveJob(t *testing.T, companyID uint, applyLink string, ageInDays int) {

	job := entities.Job{
		CompanyID: companyID,
		Title:     "Old Role",
		Category:  entities.CategoryIT,
		JobType:   entities.TypeOnSite,
		ApplyLink: applyLink,
		IsActive:  false,
	}
	require.NoError(t, dbCtx.DB.Create(&job).Error)

	updatedAt := time.Now().AddDate(0, 0, -ageInDays)
	require.NoError(t, dbCtx.DB.Model(&entities.Job{}).Where("id = ?", job.ID).
		UpdateColumn("updated_at", updatedAt).Error)
}
