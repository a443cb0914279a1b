// backend/internal/models/attempt.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type QuizAttempt struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	QuizID       uint           `json:"quiz_id" gorm:"not null;index"`
	Score        float64        `json:"score"`
	TotalCorrect int            `json:"total_correct"`
	TotalWrong   int            `json:"total_wrong"`
	CompletedAt  time.Time      `json:"completed_at"`
	Answers      []UserAnswer   `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

type UserAnswer struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null"`
	// Nil records a skipped question.
	SelectedChoiceID *uint `json:"selected_choice_id"`
}
