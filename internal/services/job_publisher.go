package services

import (
	"context"
	"time"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/acrossjobs/harvester/internal/events"
	"github.com/acrossjobs/harvester/internal/logger"
	"github.com/asaskevich/EventBus"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type publishableJobRepository interface {
	GetUnposted(ctx context.Context, repostAfter time.Time, limit int) ([]entities.Job, error)
	MarkPosted(ctx context.Context, jobIDs []uint) error
}

// JobPublisher picks a batch of fresh postings after every harvest pass
// and hands it to social consumers over the bus. A posting becomes
// eligible again once its last publication falls out of the repost window.
type JobPublisher struct {
	bus        EventBus.Bus
	jobs       publishableJobRepository
	batchSize  int
	windowDays int
}

func NewJobPublisher(bus EventBus.Bus, jobs publishableJobRepository,
	batchSize int, windowDays int) (*JobPublisher, error) {

	p := &JobPublisher{
		bus:        bus,
		jobs:       jobs,
		batchSize:  batchSize,
		windowDays: windowDays,
	}

	err := bus.Subscribe(events.HarvestCompletedTopic, p.onHarvestCompleted)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *JobPublisher) onHarvestCompleted(event events.HarvestCompleted) {

	if err := p.PublishBatch(context.Background()); err != nil {
		log.Errorf("failed to publish batch after harvest at %v: %v", event.StartedAt, err)
	}
}

func (p *JobPublisher) PublishBatch(ctx context.Context) error {

	repostAfter := time.Now().AddDate(0, 0, -p.windowDays)

	jobs, err := p.jobs.GetUnposted(ctx, repostAfter, p.batchSize)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get unposted jobs: %v", err)
		return err
	}
	if len(jobs) == 0 {
		log.Debug("no unposted jobs to publish")
		return nil
	}

	ids := lo.Map(jobs, func(job entities.Job, _ int) uint { return job.ID })
	if err = p.jobs.MarkPosted(ctx, ids); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to mark jobs as posted: %v", err)
		return err
	}

	p.bus.Publish(events.JobsReadyTopic, events.JobsReady{Jobs: jobs})
	log.Infof("published batch of %v jobs", len(jobs))
	return nil
}
