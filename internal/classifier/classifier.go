package classifier

import (
	"regexp"
	"strings"

	"github.com/acrossjobs/harvester/internal/entities"
)

// Pure keyword classifiers over free-text job fields. Matching is
// word-boundary aware: texts and keywords are tokenized the same way, so a
// keyword like "ae" or "hr" only matches a standalone token and never the
// inside of an unrelated word.

var nonTokenChars = regexp.MustCompile(`[^a-z0-9&]+`)

// tokenize lowercases the text and pads each token with single spaces, so a
// phrase match is a plain substring search over whole tokens.
func tokenize(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))
	tokens := nonTokenChars.ReplaceAllString(joined, " ")
	return " " + strings.Join(strings.Fields(tokens), " ") + " "
}

func containsKeyword(tokenized string, keyword string) bool {
	phrase := strings.TrimSpace(tokenize(keyword))
	if phrase == "" {
		return false
	}
	return strings.Contains(tokenized, " "+phrase+" ")
}

func matchAny(tokenized string, keywords []string) bool {
	for _, keyword := range keywords {
		if containsKeyword(tokenized, keyword) {
			return true
		}
	}
	return false
}

// Category derives the job category from the department hint and the title.
// The first matching rule wins; nothing matching defaults to it.
func Category(department, title string) entities.JobCategory {

	tokenized := tokenize(department, title)

	for _, rule := range categoryRules {
		if matchAny(tokenized, rule.keywords) {
			return rule.category
		}
	}
	return entities.CategoryIT
}

// Experience derives the experience level from the title and description.
// The first matching rule wins; nothing matching defaults to mid-level.
func Experience(title, description string) entities.ExperienceLevel {

	tokenized := tokenize(title, description)

	for _, rule := range experienceRules {
		if matchAny(tokenized, rule.keywords) {
			return rule.level
		}
	}
	return entities.LevelMid
}

// JobType derives the work mode from the location string and title.
func JobType(location, title string) entities.JobType {

	combined := strings.ToLower(location + " " + title)

	if strings.Contains(combined, "remote") || strings.Contains(combined, "anywhere") {
		return entities.TypeRemote
	}
	if strings.Contains(combined, "hybrid") {
		return entities.TypeHybrid
	}
	return entities.TypeOnSite
}
