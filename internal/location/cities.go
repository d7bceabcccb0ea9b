package location

// Curated city tables used to infer a country when the location string
// carries no explicit one. Lookup order matters: the first table containing
// the city wins, so an ambiguous name (e.g. "london") resolves to the
// earlier table's country.

var indianCities = newSet(
	"bangalore", "bengaluru", "mumbai", "delhi", "gurgaon", "gurugram", "hyderabad",
	"chennai", "pune", "kolkata", "ahmedabad", "jaipur", "surat", "lucknow",
	"kanpur", "nagpur", "indore", "thane", "bhopal", "visakhapatnam", "pimpri",
	"patna", "vadodara", "ghaziabad", "ludhiana", "agra", "nashik", "faridabad",
	"meerut", "rajkot", "kalyan", "vasai", "varanasi", "srinagar", "aurangabad",
	"dhanbad", "amritsar", "navi mumbai", "allahabad", "prayagraj", "ranchi",
	"howrah", "coimbatore", "jabalpur", "gwalior", "vijayawada", "jodhpur",
	"madurai", "raipur", "kota", "chandigarh", "guwahati", "noida", "greater noida",
)

var usCities = newSet(
	"new york", "los angeles", "chicago", "houston", "phoenix", "philadelphia",
	"san antonio", "san diego", "dallas", "san jose", "austin", "jacksonville",
	"fort worth", "columbus", "charlotte", "san francisco", "indianapolis",
	"seattle", "denver", "washington", "boston", "nashville", "detroit",
	"portland", "las vegas", "memphis", "louisville", "baltimore", "milwaukee",
	"albuquerque", "tucson", "fresno", "sacramento", "kansas city", "atlanta",
	"miami", "oakland", "raleigh", "minneapolis", "tulsa", "cleveland",
	"new orleans", "tampa", "honolulu", "colorado springs", "st. louis",
)

var ukCities = newSet(
	"london", "birmingham", "manchester", "glasgow", "liverpool", "edinburgh",
	"leeds", "bristol", "sheffield", "cardiff", "belfast", "newcastle",
	"nottingham", "southampton", "leicester", "coventry", "bradford", "stoke",
)

var canadianCities = newSet(
	"toronto", "montreal", "vancouver", "calgary", "edmonton", "ottawa",
	"winnipeg", "quebec city", "hamilton", "kitchener", "london", "victoria",
)

var australianCities = newSet(
	"sydney", "melbourne", "brisbane", "perth", "adelaide", "gold coast",
	"canberra", "newcastle", "wollongong", "logan city", "geelong", "hobart",
)

var europeanCities = map[string]string{
	"paris": "France", "berlin": "Germany", "madrid": "Spain",
	"rome": "Italy", "amsterdam": "Netherlands", "barcelona": "Spain",
	"munich": "Germany", "milan": "Italy", "prague": "Czech Republic",
	"vienna": "Austria", "budapest": "Hungary", "warsaw": "Poland",
	"dublin": "Ireland", "brussels": "Belgium", "zurich": "Switzerland",
	"stockholm": "Sweden", "copenhagen": "Denmark", "oslo": "Norway",
	"helsinki": "Finland", "athens": "Greece", "lisbon": "Portugal",
}

var asianCities = map[string]string{
	"singapore": "Singapore", "tokyo": "Japan", "shanghai": "China",
	"beijing": "China", "hong kong": "Hong Kong", "seoul": "South Korea",
	"bangkok": "Thailand", "kuala lumpur": "Malaysia", "manila": "Philippines",
	"jakarta": "Indonesia", "dubai": "United Arab Emirates", "tel aviv": "Israel",
	"taipei": "Taiwan", "ho chi minh": "Vietnam", "hanoi": "Vietnam",
}

var usStates = newSet(
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga",
	"hi", "id", "il", "in", "ia", "ks", "ky", "la", "me", "md",
	"ma", "mi", "mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj",
	"nm", "ny", "nc", "nd", "oh", "ok", "or", "pa", "ri", "sc",
	"sd", "tn", "tx", "ut", "vt", "va", "wa", "wv", "wi", "wy",
)

func newSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
