package store

import (
	"context"

	"gorm.io/gorm"
)

// StoryRepository persists stories.
type StoryRepository struct {
	db *gorm.DB
}

func (r *StoryRepository) List(ctx context.Context) ([]Story, error) {
	var stories []Story
	if err := r.db.WithContext(ctx).Order("id").Find(&stories).Error; err != nil {
		return nil, translate(err, "story")
	}
	return stories, nil
}

func (r *StoryRepository) ByID(ctx context.Context, id uint) (*Story, error) {
	var s Story
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, "story")
	}
	return &s, nil
}

func (r *StoryRepository) ByQuiz(ctx context.Context, quizID uint) ([]Story, error) {
	var stories []Story
	if err := r.db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("id").Find(&stories).Error; err != nil {
		return nil, translate(err, "story")
	}
	return stories, nil
}

func (r *StoryRepository) Create(ctx context.Context, s *Story) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "story")
}

func (r *StoryRepository) Update(ctx context.Context, s *Story) error {
	return translate(r.db.WithContext(ctx).Save(s).Error, "story")
}

func (r *StoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Story{}, id)
	if res.Error != nil {
		return translate(res.Error, "story")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "story")
	}
	return nil
}
