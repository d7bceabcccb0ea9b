package ats

import (
	"context"
	"encoding/json"

	"github.com/acrossjobs/harvester/internal/entities"
	log "github.com/sirupsen/logrus"
)

type greenhouseJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	Metadata    []struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	} `json:"metadata"`
}

func (c *Client) fetchGreenhouse(ctx context.Context, boardToken string) ([]entities.Posting, error) {

	url := "https://boards-api.greenhouse.io/v1/boards/" + boardToken + "/jobs?content=true"

	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	var response struct {
		Jobs []greenhouseJob `json:"jobs"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		// error payloads and shape changes count as an empty board
		log.Warnf("unexpected greenhouse response for board %v: %v", boardToken, err)
		return nil, nil
	}

	postings := make([]entities.Posting, 0, len(response.Jobs))
	for _, job := range response.Jobs {
		postings = append(postings, normalizeGreenhouse(job))
	}
	return postings, nil
}

func normalizeGreenhouse(job greenhouseJob) entities.Posting {

	employmentType := "full_time"
	for _, meta := range job.Metadata {
		if meta.Name != "Employment Type" {
			continue
		}
		var value string
		if err := json.Unmarshal(meta.Value, &value); err == nil && value != "" {
			employmentType = value
		}
		break
	}

	return entities.Posting{
		Title:        job.Title,
		Location:     fallback(job.Location.Name, "Remote"),
		CategoryHint: fallback(firstDepartment(job), "Engineering"),
		ApplyLink:    job.AbsoluteURL,
		Description:  job.Content,
		JobTypeHint:  employmentType,
	}
}

func firstDepartment(job greenhouseJob) string {
	if len(job.Departments) == 0 {
		return ""
	}
	return job.Departments[0].Name
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
