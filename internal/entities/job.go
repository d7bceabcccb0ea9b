package entities

import "time"

type JobCategory string

const (
	CategorySales      JobCategory = "sales"
	CategoryMarketing  JobCategory = "marketing"
	CategoryFinance    JobCategory = "finance"
	CategoryLegal      JobCategory = "legal"
	CategoryResearch   JobCategory = "research-development"
	CategoryManagement JobCategory = "management"
	CategoryIT         JobCategory = "it"
)

type JobType string

const (
	TypeRemote JobType = "Remote"
	TypeOnSite JobType = "On-site"
	TypeHybrid JobType = "Hybrid"
)

type ExperienceLevel string

const (
	LevelInternship ExperienceLevel = "internship"
	LevelEntry      ExperienceLevel = "entry-level"
	LevelMid        ExperienceLevel = "mid-level"
	LevelSenior     ExperienceLevel = "senior"
	LevelLead       ExperienceLevel = "lead"
	LevelExecutive  ExperienceLevel = "executive"
)

type Job struct {
	ID              uint `gorm:"primaryKey"`
	CompanyID       uint `gorm:"index;not null"`
	Title           string
	Category        JobCategory
	LocationCity    string
	LocationCountry string
	JobType         JobType
	ExperienceLevel *ExperienceLevel
	ApplyLink       string `gorm:"uniqueIndex;not null"`
	Description     string
	IsActive        bool `gorm:"index"`
	PostedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
