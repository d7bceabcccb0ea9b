package services

import (
	"context"
	"testing"
	"time"

	"github.com/acrossjobs/harvester/internal/clients/ats"
	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAtsClient struct {
	mock.Mock
}

func (m *mockAtsClient) FetchPostings(ctx context.Context, source ats.Source) ([]entities.Posting, error) {
	args := m.Called(ctx, source)
	postings, _ := args.Get(0).([]entities.Posting)
	return postings, args.Error(1)
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) UpsertBatch(ctx context.Context, jobs []entities.Job) error {
	return m.Called(ctx, jobs).Error(0)
}

func (m *mockJobs) DeactivateMissing(ctx context.Context, companyID uint, seenLinks []string) (int64, error) {
	args := m.Called(ctx, companyID, seenLinks)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error) {
	args := m.Called(ctx, expirationTime)
	return args.Get(0).(int64), args.Error(1)
}

func knownCompanies(ids map[string]uint) *mockCompanies {
	companies := &mockCompanies{}
	for slug, id := range ids {
		companies.On("GetBySlug", mock.Anything, slug).
			Return(&entities.Company{ID: id, Slug: slug}, nil)
	}
	companies.On("UpdateLastSync", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	companies.On("GetAllNames", mock.Anything).Return(nil, nil).Maybe()
	return companies
}

func Test_RunOnce_ShouldClassifyAndSyncPostings(t *testing.T) {

	source := ats.Source{Name: "Stripe", Platform: entities.PlatformGreenhouse, Identifier: "stripe"}

	atsClient := &mockAtsClient{}
	atsClient.On("FetchPostings", mock.Anything, source).Return([]entities.Posting{
		{
			Title:        "Senior Backend Engineer",
			Location:     "Bengaluru",
			CategoryHint: "Engineering",
			ApplyLink:    "https://boards.greenhouse.io/stripe/1",
		},
		{
			Title:     "Account Executive",
			Location:  "Remote",
			ApplyLink: "https://boards.greenhouse.io/stripe/2",
		},
		{Title: "", ApplyLink: "https://boards.greenhouse.io/stripe/3"},
		{Title: "No Link Role", ApplyLink: ""},
	}, nil).Once()

	jobs := &mockJobs{}
	var synced []entities.Job
	jobs.On("UpsertBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { synced = args.Get(1).([]entities.Job) }).
		Return(nil).Once()
	jobs.On("DeactivateMissing", mock.Anything, uint(7),
		[]string{"https://boards.greenhouse.io/stripe/1", "https://boards.greenhouse.io/stripe/2"}).
		Return(int64(1), nil).Once()
	jobs.On("RemoveExpired", mock.Anything, mock.Anything).Return(int64(3), nil).Once()

	harvester, err := NewHarvester(EventBus.New(), atsClient, NewCompanyResolver(knownCompanies(map[string]uint{"stripe": 7})),
		jobs, []ats.Source{source}, 0, 30)
	require.NoError(t, err)

	summary, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.JobsFound)
	assert.Equal(t, 2, summary.JobsSynced)
	assert.Equal(t, int64(1), summary.MarkedExpired)
	assert.Equal(t, int64(3), summary.Deleted)
	assert.Empty(t, summary.FailedSources)

	require.Len(t, synced, 2)
	assert.Equal(t, entities.CategoryIT, synced[0].Category)
	assert.Equal(t, "Bengaluru", synced[0].LocationCity)
	assert.Equal(t, "India", synced[0].LocationCountry)
	assert.Equal(t, entities.LevelSenior, *synced[0].ExperienceLevel)
	assert.Equal(t, entities.CategorySales, synced[1].Category)
	assert.Equal(t, entities.TypeRemote, synced[1].JobType)
	assert.True(t, synced[0].IsActive)

	assert.Equal(t, 1, summary.ByCategory[entities.CategoryIT])
	assert.Equal(t, 1, summary.ByCategory[entities.CategorySales])

	jobs.AssertExpectations(t)
	atsClient.AssertExpectations(t)
}

func Test_RunOnce_WhenSourceFails_ShouldContinueWithOthers(t *testing.T) {

	broken := ats.Source{Name: "Broken", Platform: entities.PlatformLever, Identifier: "broken"}
	healthy := ats.Source{Name: "Healthy", Platform: entities.PlatformLever, Identifier: "healthy"}

	atsClient := &mockAtsClient{}
	atsClient.On("FetchPostings", mock.Anything, broken).
		Return(nil, errors.New("all sources failed")).Once()
	atsClient.On("FetchPostings", mock.Anything, healthy).Return([]entities.Posting{
		{Title: "Designer", Location: "London", ApplyLink: "https://jobs.lever.co/healthy/1"},
	}, nil).Once()

	jobs := &mockJobs{}
	jobs.On("UpsertBatch", mock.Anything, mock.Anything).Return(nil).Once()
	jobs.On("DeactivateMissing", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	jobs.On("RemoveExpired", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	harvester, err := NewHarvester(EventBus.New(), atsClient,
		NewCompanyResolver(knownCompanies(map[string]uint{"healthy": 2})),
		jobs, []ats.Source{broken, healthy}, 0, 30)
	require.NoError(t, err)

	summary, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Broken"}, summary.FailedSources)
	assert.Equal(t, 1, summary.JobsSynced)
	jobs.AssertExpectations(t)
}

func Test_RunOnce_WhenUpsertFails_ShouldSkipReconciliation(t *testing.T) {

	source := ats.Source{Name: "Stripe", Platform: entities.PlatformGreenhouse, Identifier: "stripe"}

	atsClient := &mockAtsClient{}
	atsClient.On("FetchPostings", mock.Anything, source).Return([]entities.Posting{
		{Title: "Engineer", Location: "Remote", ApplyLink: "https://boards.greenhouse.io/stripe/1"},
	}, nil).Once()

	jobs := &mockJobs{}
	jobs.On("UpsertBatch", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	jobs.On("RemoveExpired", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	harvester, err := NewHarvester(EventBus.New(), atsClient,
		NewCompanyResolver(knownCompanies(map[string]uint{"stripe": 7})),
		jobs, []ats.Source{source}, 0, 30)
	require.NoError(t, err)

	summary, err := harvester.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Stripe"}, summary.FailedSources)
	jobs.AssertNotCalled(t, "DeactivateMissing", mock.Anything, mock.Anything, mock.Anything)
}

func Test_RunOnce_ShouldPublishHarvestCompleted(t *testing.T) {

	atsClient := &mockAtsClient{}
	jobs := &mockJobs{}
	jobs.On("RemoveExpired", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	bus := EventBus.New()
	var received []interface{}
	err := bus.Subscribe("HarvestCompletedEvent", func(event interface{}) {
		received = append(received, event)
	})
	require.NoError(t, err)

	harvester, err := NewHarvester(bus, atsClient, NewCompanyResolver(knownCompanies(nil)),
		jobs, nil, 0, 30)
	require.NoError(t, err)

	_, err = harvester.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func Test_RunOnce_WhenContextCanceled_ShouldStopBetweenCompanies(t *testing.T) {

	first := ats.Source{Name: "First", Platform: entities.PlatformAshby, Identifier: "first"}
	second := ats.Source{Name: "Second", Platform: entities.PlatformAshby, Identifier: "second"}

	ctx, cancel := context.WithCancel(context.Background())

	atsClient := &mockAtsClient{}
	atsClient.On("FetchPostings", mock.Anything, first).
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil, errors.New("all sources failed")).Once()

	jobs := &mockJobs{}

	harvester, err := NewHarvester(EventBus.New(), atsClient, NewCompanyResolver(knownCompanies(nil)),
		jobs, []ats.Source{first, second}, time.Minute, 30)
	require.NoError(t, err)

	_, err = harvester.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	atsClient.AssertNumberOfCalls(t, "FetchPostings", 1)
}
