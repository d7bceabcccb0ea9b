package ats

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Workday exposes no JSON listing API, only a per-company RSS feed at
// https://{domain}/{siteId}/rss. Items are cut out with tag-scoped,
// CDATA-aware regexes rather than a full XML parser; malformed items are
// skipped.

var rssHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept":     "application/rss+xml, application/xml, text/xml, */*",
}

var (
	rssItemPattern = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	whitespace     = regexp.MustCompile(`\s+`)

	rssLocationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[-–—]\s*([A-Za-z\s]+,\s*[A-Z]{2})`),
		regexp.MustCompile(`\(([A-Za-z\s]+,\s*[A-Z]{2})\)`),
		regexp.MustCompile(`\bin\s+([A-Za-z\s]+,\s*[A-Z]{2})`),
		regexp.MustCompile(`Location[:\s]+([A-Za-z\s]+,\s*[A-Z]{2})`),
	}
	remoteWord = regexp.MustCompile(`(?i)\bremote\b`)
)

func (c *Client) fetchWorkday(ctx context.Context, domain, siteID string) ([]entities.Posting, error) {

	if domain == "" || siteID == "" {
		return nil, errors.New("workday source needs a domain and a site id")
	}

	feedURL := fmt.Sprintf("https://%s/%s/rss", domain, siteID)

	body, status, err := c.get(ctx, feedURL, rssHeaders)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.Errorf("rss fetch failed with status %v", status)
	}

	items := rssItemPattern.FindAllStringSubmatch(string(body), -1)
	if len(items) == 0 {
		log.Warnf("no job items found in rss feed %v", feedURL)
		return nil, nil
	}

	postings := make([]entities.Posting, 0, len(items))
	for _, item := range items {
		if posting, ok := parseRSSItem(item[1]); ok {
			postings = append(postings, posting)
		}
	}
	return postings, nil
}

func parseRSSItem(itemXML string) (entities.Posting, bool) {

	title := extractXMLTag(itemXML, "title")
	link := extractXMLTag(itemXML, "link")
	description := extractXMLTag(itemXML, "description")

	if title == "" || link == "" {
		return entities.Posting{}, false
	}

	return entities.Posting{
		Title:        cleanRSSText(title),
		Location:     extractRSSLocation(title, description),
		CategoryHint: "Engineering",
		ApplyLink:    cleanRSSText(link),
		Description:  cleanRSSText(description),
		JobTypeHint:  "full_time",
	}, true
}

// extractXMLTag pulls the inner text of the first occurrence of the tag,
// preferring a CDATA block when one is present.
func extractXMLTag(xml, tag string) string {

	cdata := regexp.MustCompile(`(?s)<` + tag + `(?:[^>]*)><!\[CDATA\[(.*?)\]\]></` + tag + `>`)
	if match := cdata.FindStringSubmatch(xml); match != nil {
		return match[1]
	}

	plain := regexp.MustCompile(`(?s)<` + tag + `(?:[^>]*)>(.*?)</` + tag + `>`)
	if match := plain.FindStringSubmatch(xml); match != nil {
		return match[1]
	}

	return ""
}

// extractRSSLocation digs a "City, ST" fragment out of the title or
// description; Workday feeds rarely carry a dedicated location field.
func extractRSSLocation(title, description string) string {

	combined := title + " " + description

	for _, pattern := range rssLocationPatterns {
		if match := pattern.FindStringSubmatch(combined); match != nil {
			return strings.TrimSpace(match[1])
		}
	}

	if remoteWord.MatchString(combined) {
		return "Remote"
	}
	return "Not Specified"
}

func cleanRSSText(text string) string {

	replacer := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
	text = replacer.Replace(text)
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
