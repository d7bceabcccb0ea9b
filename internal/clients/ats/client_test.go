package ats

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func responseFromFile(t *testing.T, path string) *http.Response {
	file, err := os.ReadFile(path)
	require.NoError(t, err)
	return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBuffer(file))}
}

func responseFromString(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func urlHasPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(req *http.Request) bool {
		return strings.HasPrefix(req.URL.String(), prefix)
	})
}

func Test_FetchPostings_Greenhouse(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", urlHasPrefix("https://boards-api.greenhouse.io/v1/boards/stripe/jobs")).
		Return(responseFromFile(t, "testdata/greenhouse_jobs.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	postings, err := client.FetchPostings(context.Background(),
		Source{Name: "Stripe", Platform: entities.PlatformGreenhouse, Identifier: "stripe"})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Equal(t, "Senior Backend Engineer", postings[0].Title)
	assert.Equal(t, "Bangalore, India", postings[0].Location)
	assert.Equal(t, "Engineering", postings[0].CategoryHint)
	assert.Equal(t, "https://boards.greenhouse.io/stripe/jobs/4567890", postings[0].ApplyLink)
	assert.Equal(t, "Full-time", postings[0].JobTypeHint)

	// missing location, department and employment type fall back
	assert.Equal(t, "Remote", postings[1].Location)
	assert.Equal(t, "Engineering", postings[1].CategoryHint)
	assert.Equal(t, "full_time", postings[1].JobTypeHint)
}

// Lever returns a bare array; both elements must survive the decode.
func Test_FetchPostings_LeverBareArray(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", urlHasPrefix("https://api.lever.co/v0/postings/figma")).
		Return(responseFromFile(t, "testdata/lever_postings.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	postings, err := client.FetchPostings(context.Background(),
		Source{Name: "Figma", Platform: entities.PlatformLever, Identifier: "figma"})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Equal(t, "Product Designer", postings[0].Title)
	assert.Equal(t, "https://jobs.lever.co/figma/a1b2c3d4", postings[0].ApplyLink)

	// hostedUrl missing: applyUrl is the next link candidate; plain
	// description is the fallback body
	assert.Equal(t, "https://jobs.lever.co/figma/e5f6a7b8/apply", postings[1].ApplyLink)
	assert.Equal(t, "Build data pipelines.", postings[1].Description)
	assert.Equal(t, "Engineering", postings[1].CategoryHint)
}

func Test_FetchPostings_LeverErrorPayloadMeansEmptyBoard(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).
		Return(responseFromString(200, `{"ok":false,"error":"Document not found"}`), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	postings, err := client.FetchPostings(context.Background(),
		Source{Name: "Ghost", Platform: entities.PlatformLever, Identifier: "ghost"})
	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func Test_FetchPostings_AshbyJobPostingsKey(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", urlHasPrefix("https://api.ashbyhq.com/posting-api/job-board/openai")).
		Return(responseFromFile(t, "testdata/ashby_board.json"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	postings, err := client.FetchPostings(context.Background(),
		Source{Name: "OpenAI", Platform: entities.PlatformAshby, Identifier: "openai"})
	require.NoError(t, err)
	require.Len(t, postings, 1)

	assert.Equal(t, "Machine Learning Engineer", postings[0].Title)
	assert.Equal(t, "San Francisco, CA", postings[0].Location)
	assert.Equal(t, "Research", postings[0].CategoryHint)
	assert.Equal(t, "<p>Train large models.</p>", postings[0].Description)
}

func Test_FetchPostings_WorkdayRSS(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", urlHasPrefix("https://uber.wd1.myworkdayjobs.com/Uber_Careers/rss")).
		Return(responseFromFile(t, "testdata/workday_feed.xml"), nil)

	client := NewClient()
	client.SetHTTPClient(mockClient)

	postings, err := client.FetchPostings(context.Background(), Source{
		Name:          "Uber",
		Platform:      entities.PlatformWorkday,
		Identifier:    "uber",
		WorkdayDomain: "uber.wd1.myworkdayjobs.com",
		WorkdaySiteID: "Uber_Careers",
	})
	require.NoError(t, err)
	require.Len(t, postings, 2) // the titleless item is dropped

	assert.Equal(t, "Staff Software Engineer - Austin, TX", postings[0].Title)
	assert.Equal(t, "Austin, TX", postings[0].Location)
	assert.Equal(t,
		"https://uber.wd1.myworkdayjobs.com/Uber_Careers/job/Austin/Staff-Software-Engineer_R123",
		postings[0].ApplyLink)
	assert.Equal(t, "Build & scale marketplace systems.", postings[0].Description)

	assert.Equal(t, "Remote Product Manager", postings[1].Title)
	assert.Equal(t, "Remote", postings[1].Location)
}
