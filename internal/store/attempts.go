package store

import (
	"context"

	"gorm.io/gorm"
)

// AttemptRepository persists quiz attempts.
type AttemptRepository struct {
	db *gorm.DB
}

func (r *AttemptRepository) List(ctx context.Context) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := r.db.WithContext(ctx).Order("id").Find(&attempts).Error; err != nil {
		return nil, translate(err, "quiz attempt")
	}
	return attempts, nil
}

func (r *AttemptRepository) ByID(ctx context.Context, id uint) (*QuizAttempt, error) {
	var a QuizAttempt
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "quiz attempt")
	}
	return &a, nil
}

func (r *AttemptRepository) ByUser(ctx context.Context, userID uint) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&attempts).Error; err != nil {
		return nil, translate(err, "quiz attempt")
	}
	return attempts, nil
}

func (r *AttemptRepository) Create(ctx context.Context, a *QuizAttempt) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "quiz attempt")
}

func (r *AttemptRepository) Update(ctx context.Context, a *QuizAttempt) error {
	return translate(r.db.WithContext(ctx).Save(a).Error, "quiz attempt")
}

func (r *AttemptRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&QuizAttempt{}, id)
	if res.Error != nil {
		return translate(res.Error, "quiz attempt")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "quiz attempt")
	}
	return nil
}
