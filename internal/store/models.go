package store

import "time"

// User is a registered account. The password hash is never serialized.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:USER" json:"role"`
}

// Quiz is a playable quiz.
type Quiz struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"size:255;not null" json:"title"`
	DifficultyLevel string `gorm:"size:32" json:"difficultyLevel"`
}

// Question belongs to a quiz.
type Question struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	QuizID uint   `gorm:"index;not null" json:"quizId"`
	Text   string `gorm:"not null" json:"text"`
	Type   string `gorm:"size:32" json:"type"`
}

// Answer is one option for a question.
type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"not null" json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Story is reading material attached to a quiz.
type Story struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	QuizID  uint   `gorm:"index;not null" json:"quizId"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Author  string `gorm:"size:255" json:"author"`
	Content string `json:"content"`
}

// QuizAttempt records one play-through of a quiz by a user.
type QuizAttempt struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"index;not null" json:"userId"`
	QuizID uint      `gorm:"index;not null" json:"quizId"`
	Score  int       `json:"score"`
	Date   time.Time `json:"date"`
}

// QuizProgress records a per-question result within an attempt.
type QuizProgress struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	AttemptID  uint `gorm:"index;not null" json:"attemptId"`
	QuizID     uint `gorm:"index;not null" json:"quizId"`
	QuestionID uint `gorm:"index;not null" json:"questionId"`
	IsCorrect  bool `json:"isCorrect"`
}

// allModels is the migration set.
func allModels() []interface{} {
	return []interface{}{
		&User{}, &Quiz{}, &Question{}, &Answer{},
		&Story{}, &QuizAttempt{}, &QuizProgress{},
	}
}
