package ats

import (
	"context"
	"encoding/json"

	"github.com/acrossjobs/harvester/internal/entities"
	log "github.com/sirupsen/logrus"
)

type ashbyJob struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Location        string `json:"location"`
	Department      string `json:"department"`
	JobURL          string `json:"jobUrl"`
	ApplyURL        string `json:"applyUrl"`
	DescriptionHTML string `json:"descriptionHtml"`
	Description     string `json:"description"`
	EmploymentType  string `json:"employmentType"`
}

func (c *Client) fetchAshby(ctx context.Context, boardToken string) ([]entities.Posting, error) {

	url := "https://api.ashbyhq.com/posting-api/job-board/" + boardToken

	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	// the board payload has carried both "jobs" and "jobPostings" over time
	var response struct {
		Jobs        []ashbyJob `json:"jobs"`
		JobPostings []ashbyJob `json:"jobPostings"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		log.Warnf("unexpected ashby response for board %v: %v", boardToken, err)
		return nil, nil
	}

	jobs := response.Jobs
	if len(jobs) == 0 {
		jobs = response.JobPostings
	}

	postings := make([]entities.Posting, 0, len(jobs))
	for _, job := range jobs {
		postings = append(postings, normalizeAshby(job))
	}
	return postings, nil
}

func normalizeAshby(job ashbyJob) entities.Posting {

	return entities.Posting{
		Title:        job.Title,
		Location:     fallback(job.Location, "Remote"),
		CategoryHint: fallback(job.Department, "Engineering"),
		ApplyLink:    fallback(job.JobURL, job.ApplyURL),
		Description:  fallback(job.DescriptionHTML, job.Description),
		JobTypeHint:  fallback(job.EmploymentType, "full_time"),
	}
}
