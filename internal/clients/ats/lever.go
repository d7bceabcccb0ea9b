package ats

import (
	"context"
	"encoding/json"

	"github.com/acrossjobs/harvester/internal/entities"
	log "github.com/sirupsen/logrus"
)

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	HostedURL        string `json:"hostedUrl"`
	ApplyURL         string `json:"applyUrl"`
	Description      string `json:"description"`
	DescriptionPlain string `json:"descriptionPlain"`
}

// Lever returns a bare JSON array, not an object wrapping one. Error
// payloads come back as objects and therefore fail the array decode; those
// count as an empty board.
func (c *Client) fetchLever(ctx context.Context, companyIdentifier string) ([]entities.Posting, error) {

	url := "https://api.lever.co/v0/postings/" + companyIdentifier + "?mode=json"

	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	var response []leverPosting
	if err = json.Unmarshal(body, &response); err != nil {
		log.Warnf("unexpected lever response for company %v: %v", companyIdentifier, err)
		return nil, nil
	}

	postings := make([]entities.Posting, 0, len(response))
	for _, posting := range response {
		postings = append(postings, normalizeLever(posting))
	}
	return postings, nil
}

func normalizeLever(posting leverPosting) entities.Posting {

	return entities.Posting{
		Title:        posting.Text,
		Location:     fallback(posting.Categories.Location, "Remote"),
		CategoryHint: fallback(posting.Categories.Team, "Engineering"),
		ApplyLink:    fallback(posting.HostedURL, posting.ApplyURL),
		Description:  fallback(posting.Description, posting.DescriptionPlain),
		JobTypeHint:  fallback(posting.Categories.Commitment, "full_time"),
	}
}
