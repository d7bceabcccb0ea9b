package services

import (
	"context"
	"time"

	"github.com/acrossjobs/harvester/internal/classifier"
	"github.com/acrossjobs/harvester/internal/clients/ats"
	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/acrossjobs/harvester/internal/events"
	"github.com/acrossjobs/harvester/internal/location"
	"github.com/acrossjobs/harvester/internal/logger"
	"github.com/acrossjobs/harvester/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type atsClient interface {
	FetchPostings(ctx context.Context, source ats.Source) ([]entities.Posting, error)
}

type jobRepository interface {
	UpsertBatch(ctx context.Context, jobs []entities.Job) error
	DeactivateMissing(ctx context.Context, companyID uint, seenLinks []string) (int64, error)
	RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error)
}

// Summary describes one full harvest pass across the roster.
type Summary struct {
	StartedAt     time.Time
	Duration      time.Duration
	JobsFound     int
	JobsSynced    int
	MarkedExpired int64
	Deleted       int64
	FailedSources []string
	ByCategory    map[entities.JobCategory]int
	ByExperience  map[entities.ExperienceLevel]int
}

type Harvester struct {
	bus           EventBus.Bus
	atsClient     atsClient
	resolver      *CompanyResolver
	jobs          jobRepository
	sources       []ats.Source
	companyDelay  time.Duration
	retentionDays int
}

func NewHarvester(bus EventBus.Bus, atsClient atsClient, resolver *CompanyResolver,
	jobs jobRepository, sources []ats.Source, companyDelay time.Duration, retentionDays int) (*Harvester, error) {

	if retentionDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	return &Harvester{
		bus:           bus,
		atsClient:     atsClient,
		resolver:      resolver,
		jobs:          jobs,
		sources:       sources,
		companyDelay:  companyDelay,
		retentionDays: retentionDays,
	}, nil
}

// RunOnce walks the roster sequentially, syncs every reachable board and
// retires postings past the retention window. It returns a summary even
// when some sources fail; the error is non-nil only when the context is
// canceled mid-pass.
func (h *Harvester) RunOnce(ctx context.Context) (Summary, error) {

	startTime := time.Now()
	log.Infof("running harvest of %v sources at %v", len(h.sources), startTime)

	summary := Summary{
		StartedAt:    startTime,
		ByCategory:   map[entities.JobCategory]int{},
		ByExperience: map[entities.ExperienceLevel]int{},
	}

	for i, source := range h.sources {

		if err := h.harvestCompany(ctx, source, &summary); err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.FailedSources = append(summary.FailedSources, source.Name)
		}

		if i < len(h.sources)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(h.companyDelay):
			}
		}
	}

	h.removeExpired(ctx, &summary)
	h.resolver.WarnAboutDuplicates(ctx)

	summary.Duration = time.Since(startTime)
	metrics.HarvestDuration.Observe(summary.Duration.Seconds())

	log.Infof("harvest ended after %v: found %v, synced %v, marked expired %v, deleted %v, failed sources %v",
		summary.Duration, summary.JobsFound, summary.JobsSynced,
		summary.MarkedExpired, summary.Deleted, len(summary.FailedSources))
	log.Infof("category distribution: %v", summary.ByCategory)
	log.Infof("experience distribution: %v", summary.ByExperience)

	h.bus.Publish(events.HarvestCompletedTopic, events.HarvestCompleted{
		StartedAt:     summary.StartedAt,
		Duration:      summary.Duration,
		JobsFound:     summary.JobsFound,
		JobsSynced:    summary.JobsSynced,
		MarkedExpired: summary.MarkedExpired,
		Deleted:       summary.Deleted,
		FailedSources: summary.FailedSources,
	})

	return summary, nil
}

func (h *Harvester) harvestCompany(ctx context.Context, source ats.Source, summary *Summary) error {

	start := time.Now()
	postings, err := h.atsClient.FetchPostings(ctx, source)
	metrics.CompanyStepDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAtsApi).
			Errorf("failed to fetch postings for %v: %v", source.Name, err)
		return err
	}

	resolution, err := h.resolver.Resolve(ctx, source.Name, source.Platform, source.Identifier)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to resolve company %v: %v", source.Name, err)
		return err
	}

	jobs := h.buildJobs(resolution.CompanyID, postings, summary)
	summary.JobsFound += len(postings)

	start = time.Now()
	err = h.jobs.UpsertBatch(ctx, jobs)
	metrics.CompanyStepDuration.WithLabelValues("sync").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to upsert postings for %v: %v", source.Name, err)
		return err
	}
	summary.JobsSynced += len(jobs)
	metrics.SyncedJobsCounter.Add(float64(len(jobs)))

	start = time.Now()
	expired, err := h.jobs.DeactivateMissing(ctx, resolution.CompanyID, seenLinks(jobs))
	metrics.CompanyStepDuration.WithLabelValues("reconcile").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to reconcile postings for %v: %v", source.Name, err)
		return err
	}
	summary.MarkedExpired += expired
	metrics.ExpiredJobsCounter.Add(float64(expired))

	h.resolver.MarkSynced(ctx, resolution.CompanyID)

	log.Debugf("synced %v postings for %v, marked %v expired", len(jobs), source.Name, expired)
	return nil
}

func (h *Harvester) buildJobs(companyID uint, postings []entities.Posting, summary *Summary) []entities.Job {

	jobs := make([]entities.Job, 0, len(postings))
	for _, posting := range postings {

		if posting.Title == "" || posting.ApplyLink == "" {
			continue
		}

		loc := location.Parse(posting.Location)
		category := classifier.Category(posting.CategoryHint, posting.Title)
		level := classifier.Experience(posting.Title, posting.Description)

		jobType := classifier.JobType(posting.Location+" "+posting.JobTypeHint, posting.Title)

		summary.ByCategory[category]++
		summary.ByExperience[level]++

		jobs = append(jobs, entities.Job{
			CompanyID:       companyID,
			Title:           posting.Title,
			Category:        category,
			LocationCity:    loc.City,
			LocationCountry: loc.Country,
			JobType:         jobType,
			ExperienceLevel: &level,
			ApplyLink:       posting.ApplyLink,
			Description:     posting.Description,
			IsActive:        true,
		})
	}
	return jobs
}

func (h *Harvester) removeExpired(ctx context.Context, summary *Summary) {

	expirationTime := time.Now().AddDate(0, 0, -h.retentionDays)
	deleted, err := h.jobs.RemoveExpired(ctx, expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to remove expired postings: %v", err)
		return
	}
	summary.Deleted = deleted
	metrics.DeletedJobsCounter.Add(float64(deleted))
}

func seenLinks(jobs []entities.Job) []string {
	links := make([]string, len(jobs))
	for i, job := range jobs {
		links[i] = job.ApplyLink
	}
	return links
}
