package services

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

var legalSuffixes = []string{"inc", "llc", "ltd", "corp", "corporation", "company", "co"}

// NormalizeCompanyName lowercases a name and strips punctuation and
// trailing legal suffixes, so "Stripe, Inc." and "stripe" compare equal.
func NormalizeCompanyName(name string) string {

	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	for len(words) > 1 && lo.Contains(legalSuffixes, words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// AreSimilar reports whether two company names likely refer to the same
// company: normalized equality, containment, or edit distance within 2.
func AreSimilar(a, b string) bool {

	na, nb := NormalizeCompanyName(a), NormalizeCompanyName(b)
	if na == "" || nb == "" {
		return na == nb
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return fuzzy.LevenshteinDistance(na, nb) <= 2
}

// FindDuplicateGroups clusters names that appear to refer to the same
// company. Each returned group keeps the original spellings and has at
// least two members.
func FindDuplicateGroups(names []string) [][]string {

	var groups [][]string
	used := make([]bool, len(names))

	for i := range names {
		if used[i] {
			continue
		}
		group := []string{names[i]}
		for j := i + 1; j < len(names); j++ {
			if !used[j] && AreSimilar(names[i], names[j]) {
				group = append(group, names[j])
				used[j] = true
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}
