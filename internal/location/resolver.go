package location

import "strings"

// Location is the best-effort interpretation of a free-text location string.
// This is a heuristic, not geocoding: an ambiguous city resolves to the
// first curated table that contains it.
type Location struct {
	City     string
	Country  string
	State    string
	IsRemote bool
}

var remoteKeywords = []string{"remote", "anywhere", "wfh", "work from home"}

func Parse(text string) Location {

	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" || isRemote(normalized) {
		return Location{City: "Remote", Country: "Global", IsRemote: true}
	}

	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	city := parts[0]

	if len(parts) >= 2 {
		if loc, ok := resolveExplicitCountry(city, parts); ok {
			return loc
		}
	}

	return Location{City: city, Country: inferCountry(strings.ToLower(city))}
}

func isRemote(normalized string) bool {
	for _, keyword := range remoteKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

// resolveExplicitCountry matches the second segment against known country
// names/abbreviations and the US state abbreviations.
func resolveExplicitCountry(city string, parts []string) (Location, bool) {

	second := strings.ToLower(parts[1])
	third := ""
	if len(parts) >= 3 {
		third = parts[2]
	}

	switch second {
	case "india", "in":
		return Location{City: city, Country: "India", State: third}, true
	case "usa", "united states", "us":
		return Location{City: city, Country: "United States", State: third}, true
	case "uk", "united kingdom", "england":
		return Location{City: city, Country: "United Kingdom"}, true
	case "canada", "ca":
		return Location{City: city, Country: "Canada"}, true
	case "australia", "au":
		return Location{City: city, Country: "Australia"}, true
	}

	if _, ok := usStates[second]; ok {
		return Location{City: city, Country: "United States", State: parts[1]}, true
	}

	return Location{}, false
}

func inferCountry(cityLower string) string {

	if _, ok := indianCities[cityLower]; ok {
		return "India"
	}
	if strings.Contains(cityLower, "bengaluru") || strings.Contains(cityLower, "bangalore") {
		return "India"
	}
	if _, ok := usCities[cityLower]; ok {
		return "United States"
	}
	if _, ok := ukCities[cityLower]; ok {
		return "United Kingdom"
	}
	if _, ok := canadianCities[cityLower]; ok {
		return "Canada"
	}
	if _, ok := australianCities[cityLower]; ok {
		return "Australia"
	}
	if country, ok := europeanCities[cityLower]; ok {
		return country
	}
	if country, ok := asianCities[cityLower]; ok {
		return country
	}

	return "Global"
}
