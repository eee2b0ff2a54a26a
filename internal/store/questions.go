package store

import (
	"context"

	"gorm.io/gorm"
)

// QuestionRepository persists quiz questions.
type QuestionRepository struct {
	db *gorm.DB
}

func (r *QuestionRepository) List(ctx context.Context) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).Order("id").Find(&questions).Error; err != nil {
		return nil, translate(err, "question")
	}
	return questions, nil
}

func (r *QuestionRepository) ByID(ctx context.Context, id uint) (*Question, error) {
	var q Question
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, translate(err, "question")
	}
	return &q, nil
}

func (r *QuestionRepository) ByQuiz(ctx context.Context, quizID uint) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error; err != nil {
		return nil, translate(err, "question")
	}
	return questions, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *Question) error {
	return translate(r.db.WithContext(ctx).Create(q).Error, "question")
}

func (r *QuestionRepository) Update(ctx context.Context, q *Question) error {
	return translate(r.db.WithContext(ctx).Save(q).Error, "question")
}

func (r *QuestionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Question{}, id)
	if res.Error != nil {
		return translate(res.Error, "question")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "question")
	}
	return nil
}
