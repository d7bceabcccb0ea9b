package events

import (
	"time"

	"github.com/acrossjobs/harvester/internal/entities"
)

var HarvestCompletedTopic = "HarvestCompletedEvent"
var JobsReadyTopic = "JobsReadyEvent"

// JobsReady carries a batch of postings selected for social publishing.
type JobsReady struct {
	Jobs []entities.Job
}

type HarvestCompleted struct {
	StartedAt     time.Time
	Duration      time.Duration
	JobsFound     int
	JobsSynced    int
	MarkedExpired int64
	Deleted       int64
	FailedSources []string
}
