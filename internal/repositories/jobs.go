package repositories

import (
	"context"
	"time"

	"github.com/acrossjobs/harvester/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// UpsertBatch inserts or refreshes the batch keyed on apply_link. Re-seeing
// a posting reactivates it and bumps updated_at, which is what the
// staleness window is measured from.
func (repo *Jobs) UpsertBatch(ctx context.Context, jobs []entities.Job) error {

	if len(jobs) == 0 {
		return nil
	}

	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "apply_link"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_id", "title", "category", "location_city", "location_country",
			"job_type", "experience_level", "description", "is_active", "updated_at",
		}),
	}).Create(&jobs).Error
}

func (repo *Jobs) ActiveLinksByCompany(ctx context.Context, companyID uint) ([]string, error) {

	var links []string
	err := repo.db.WithContext(ctx).Model(&entities.Job{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Pluck("apply_link", &links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// DeactivateMissing flips to inactive every active posting of the company
// whose apply link was not seen in the current harvest pass.
func (repo *Jobs) DeactivateMissing(ctx context.Context, companyID uint, seenLinks []string) (int64, error) {

	query := repo.db.WithContext(ctx).Model(&entities.Job{}).
		Where("company_id = ? AND is_active = ?", companyID, true)
	if len(seenLinks) > 0 {
		query = query.Where("apply_link NOT IN ?", seenLinks)
	}

	res := query.Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

// RemoveExpired purges postings that have stayed inactive past the
// retention window.
func (repo *Jobs) RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Delete(&entities.Job{}, "is_active = ? AND updated_at < ?", false, expirationTime)
	return res.RowsAffected, res.Error
}

func (repo *Jobs) GetActive(ctx context.Context, limit int, offset int) ([]entities.Job, error) {

	var jobs []entities.Job
	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetUnposted returns active postings never published downstream, or
// published before the repeat window; feeds the social-posting consumer.
func (repo *Jobs) GetUnposted(ctx context.Context, repostAfter time.Time, limit int) ([]entities.Job, error) {

	var jobs []entities.Job
	err := repo.db.WithContext(ctx).
		Where("is_active = ? AND (posted_at IS NULL OR posted_at < ?)", true, repostAfter).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) MarkPosted(ctx context.Context, jobIDs []uint) error {

	if len(jobIDs) == 0 {
		return nil
	}

	return repo.db.WithContext(ctx).Model(&entities.Job{}).
		Where("id IN ?", jobIDs).
		Update("posted_at", time.Now().UTC()).Error
}
