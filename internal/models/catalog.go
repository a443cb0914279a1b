// backend/internal/models/catalog.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Question moderation states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Question difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Name      string         `json:"name" gorm:"not null"`
	Slug      string         `json:"slug" gorm:"unique;not null"`
	Subjects  []Subject      `json:"subjects,omitempty" gorm:"foreignKey:CategoryID"`
}

type Subject struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	CategoryID uint           `json:"category_id" gorm:"not null"`
	Name       string         `json:"name" gorm:"not null"`
	Slug       string         `json:"slug" gorm:"unique;not null"`
}

type Question struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	SubjectID   uint           `json:"subject_id"`
	Text        string         `json:"text" gorm:"not null"`
	Explanation string         `json:"explanation"`
	Difficulty  string         `json:"difficulty" gorm:"default:medium"`
	Status      string         `json:"status" gorm:"default:approved;index"`
	// Nullable so the question survives removal of the submitter account.
	SubmittedByID *uint    `json:"submitted_by_id"`
	Order         int      `json:"order" gorm:"column:sort_order;default:0"`
	Choices       []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}

type Choice struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	QuestionID uint           `json:"question_id" gorm:"not null"`
	Text       string         `json:"text" gorm:"not null"`
	Label      string         `json:"label" gorm:"size:1"`
	IsCorrect  bool           `json:"is_correct" gorm:"default:false"`
}

type Quiz struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Title       string         `json:"title" gorm:"not null"`
	SubjectID   *uint          `json:"subject_id"`
	Description string         `json:"description"`
	TimeLimit   uint           `json:"time_limit_minutes"`
	IsPremium   bool           `json:"is_premium" gorm:"default:false"`
	// Nil means the marking defaults configured at startup apply.
	PositiveMarks *float64   `json:"positive_marks"`
	NegativeMarks *float64   `json:"negative_marks"`
	Questions     []Question `json:"questions,omitempty" gorm:"many2many:quiz_questions"`
}

// MarkingScheme is the pair of per-answer marks applied while scoring.
type MarkingScheme struct {
	Positive float64
	Negative float64
}

// Marking resolves the quiz's effective scheme, falling back to defaults
// for whichever field the quiz does not override.
func (q *Quiz) Marking(defaults MarkingScheme) MarkingScheme {
	scheme := defaults
	if q.PositiveMarks != nil {
		scheme.Positive = *q.PositiveMarks
	}
	if q.NegativeMarks != nil {
		scheme.Negative = *q.NegativeMarks
	}
	return scheme
}
