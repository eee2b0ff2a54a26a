package store

import (
	"context"

	"gorm.io/gorm"
)

// AnswerRepository persists answer options.
type AnswerRepository struct {
	db *gorm.DB
}

func (r *AnswerRepository) List(ctx context.Context) ([]Answer, error) {
	var answers []Answer
	if err := r.db.WithContext(ctx).Order("id").Find(&answers).Error; err != nil {
		return nil, translate(err, "answer")
	}
	return answers, nil
}

func (r *AnswerRepository) ByID(ctx context.Context, id uint) (*Answer, error) {
	var a Answer
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "answer")
	}
	return &a, nil
}

func (r *AnswerRepository) ByQuestion(ctx context.Context, questionID uint) ([]Answer, error) {
	var answers []Answer
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id").Find(&answers).Error; err != nil {
		return nil, translate(err, "answer")
	}
	return answers, nil
}

func (r *AnswerRepository) Create(ctx context.Context, a *Answer) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "answer")
}

func (r *AnswerRepository) Update(ctx context.Context, a *Answer) error {
	return translate(r.db.WithContext(ctx).Save(a).Error, "answer")
}

func (r *AnswerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Answer{}, id)
	if res.Error != nil {
		return translate(res.Error, "answer")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "answer")
	}
	return nil
}
