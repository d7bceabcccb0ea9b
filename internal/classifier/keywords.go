package classifier

import "github.com/acrossjobs/harvester/internal/entities"

// Ordered keyword rule tables. Order is a deliberate tie-break: sales and
// marketing are tested before management and it, because almost any role
// would otherwise fall through to it.

type categoryRule struct {
	category entities.JobCategory
	keywords []string
}

var categoryRules = []categoryRule{
	{entities.CategorySales, []string{
		"sales", "account executive", "ae", "business development", "bdr", "sdr",
		"revenue", "account manager", "customer success", "partnerships", "commercial",
	}},
	{entities.CategoryMarketing, []string{
		"marketing", "brand", "growth", "content", "seo", "sem", "digital marketing",
		"campaign", "social media", "community", "creative", "copywriter",
	}},
	{entities.CategoryFinance, []string{
		"finance", "accounting", "controller", "financial", "audit", "fp&a",
		"cfo", "tax", "payroll",
	}},
	{entities.CategoryLegal, []string{
		"legal", "attorney", "counsel", "compliance", "lawyer", "paralegal",
		"regulatory", "contracts",
	}},
	{entities.CategoryResearch, []string{
		"research", "scientist", "science", "r&d", "algorithm", "lab", "phd",
		"postdoc", "ml researcher", "ai researcher",
	}},
	{entities.CategoryManagement, []string{
		"ceo", "cto", "coo", "cmo", "chief", "vp", "vice president", "director of",
		"head of", "hr", "human resources", "people ops",
	}},
	{entities.CategoryIT, []string{
		"engineer", "developer", "software", "frontend", "backend", "devops",
		"sre", "architect", "programming", "cloud", "security",
	}},
}

type experienceRule struct {
	level    entities.ExperienceLevel
	keywords []string
}

var experienceRules = []experienceRule{
	{entities.LevelInternship, []string{
		"intern", "internship", "co-op", "apprentice", "new grad", "student", "campus",
	}},
	{entities.LevelExecutive, []string{
		"ceo", "cto", "coo", "cfo", "cmo", "chief", "vp", "vice president",
		"executive director", "managing director",
	}},
	// "staff" is matched as a bare token so titles like "Staff Software
	// Engineer" land here; the upstream lists only had the narrower
	// "staff engineer"/"staff developer" phrases.
	{entities.LevelLead, []string{
		"lead", "principal", "staff", "architect", "head of",
	}},
	{entities.LevelSenior, []string{
		"senior", "sr", "sr.", "expert",
	}},
	{entities.LevelEntry, []string{
		"junior", "jr", "jr.", "graduate", "entry", "associate", "trainee",
	}},
}
