package store

import (
	"context"

	"gorm.io/gorm"
)

// ProgressRepository persists per-question attempt progress.
type ProgressRepository struct {
	db *gorm.DB
}

func (r *ProgressRepository) List(ctx context.Context) ([]QuizProgress, error) {
	var records []QuizProgress
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err, "quiz progress")
	}
	return records, nil
}

func (r *ProgressRepository) ByID(ctx context.Context, id uint) (*QuizProgress, error) {
	var p QuizProgress
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "quiz progress")
	}
	return &p, nil
}

func (r *ProgressRepository) ByAttempt(ctx context.Context, attemptID uint) ([]QuizProgress, error) {
	var records []QuizProgress
	if err := r.db.WithContext(ctx).Where("attempt_id = ?", attemptID).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err, "quiz progress")
	}
	return records, nil
}

func (r *ProgressRepository) Create(ctx context.Context, p *QuizProgress) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "quiz progress")
}

func (r *ProgressRepository) Update(ctx context.Context, p *QuizProgress) error {
	return translate(r.db.WithContext(ctx).Save(p).Error, "quiz progress")
}

func (r *ProgressRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&QuizProgress{}, id)
	if res.Error != nil {
		return translate(res.Error, "quiz progress")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "quiz progress")
	}
	return nil
}
