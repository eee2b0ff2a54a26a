package store

import (
	"context"

	"gorm.io/gorm"
)

// QuizRepository persists quizzes.
type QuizRepository struct {
	db *gorm.DB
}

func (r *QuizRepository) List(ctx context.Context) ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.WithContext(ctx).Order("id").Find(&quizzes).Error; err != nil {
		return nil, translate(err, "quiz")
	}
	return quizzes, nil
}

func (r *QuizRepository) ByID(ctx context.Context, id uint) (*Quiz, error) {
	var q Quiz
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, translate(err, "quiz")
	}
	return &q, nil
}

func (r *QuizRepository) Create(ctx context.Context, q *Quiz) error {
	return translate(r.db.WithContext(ctx).Create(q).Error, "quiz")
}

func (r *QuizRepository) Update(ctx context.Context, q *Quiz) error {
	return translate(r.db.WithContext(ctx).Save(q).Error, "quiz")
}

func (r *QuizRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Quiz{}, id)
	if res.Error != nil {
		return translate(res.Error, "quiz")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "quiz")
	}
	return nil
}
