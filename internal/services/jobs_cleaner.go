package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type jobCleanupRepository interface {
	RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error)
}

// JobsCleaner purges long-inactive postings on a daily schedule, so the
// store shrinks even when the harvest cron runs sparsely.
type JobsCleaner struct {
	jobs          jobCleanupRepository
	cron          *cron.Cron
	retentionDays int
}

func NewJobsCleaner(jobs jobCleanupRepository, retentionDays int) (*JobsCleaner, error) {

	if retentionDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	jc := &JobsCleaner{
		jobs:          jobs,
		cron:          cron.New(),
		retentionDays: retentionDays,
	}

	_, err := jc.cron.AddFunc("0 0 * * *", jc.cleanExpiredJobs)
	if err != nil {
		return nil, err
	}

	jc.cron.Start()
	log.Infof("jobs cleaner started, retention in days: %d", jc.retentionDays)
	return jc, nil
}

func (jc *JobsCleaner) Stop() {
	jc.cron.Stop()
}

func (jc *JobsCleaner) cleanExpiredJobs() {
	expirationTime := time.Now().AddDate(0, 0, -jc.retentionDays)
	rowsAffected, err := jc.jobs.RemoveExpired(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("Failed to clean expired jobs: %v", err)
	} else {
		log.Infof("Expired jobs were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
