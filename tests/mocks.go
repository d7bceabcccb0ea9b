package tests

import (
	"context"

	"github.com/acrossjobs/harvester/internal/clients/ats"
	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/pkg/errors"
)

// mockBoards serves canned postings per source name, so a harvest pass can
// run against the real store without touching the network. Boards can be
// mutated between passes to simulate postings appearing and vanishing.
type mockBoards struct {
	postings map[string][]entities.Posting
}

func (m *mockBoards) FetchPostings(ctx context.Context, source ats.Source) ([]entities.Posting, error) {
	postings, ok := m.postings[source.Name]
	if !ok {
		return nil, errors.New("all sources failed")
	}
	return postings, nil
}
