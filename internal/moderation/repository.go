// backend/internal/moderation/repository.go
package moderation

import (
	"log"

	"gorm.io/gorm"

	"mock-platform/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateQuestionWithChoices persists a submitted question and all of its
// choices as one unit. A question with fewer choices than submitted is an
// invalid state, so any failure rolls the whole thing back.
func (r *Repository) CreateQuestionWithChoices(question *models.Question, choices []models.Choice) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			log.Printf("Error creating question: %v", err)
			return err
		}

		for i := range choices {
			choices[i].QuestionID = question.ID
			if err := tx.Create(&choices[i]).Error; err != nil {
				log.Printf("Error creating choice for question %d: %v", question.ID, err)
				return err
			}
		}

		return nil
	})
}

// UpdateStatus moves the given pending questions to the target status and
// returns how many rows actually transitioned.
func (r *Repository) UpdateStatus(questionIDs []uint, target string) (int64, error) {
	result := r.db.Model(&models.Question{}).
		Where("id IN ? AND status = ?", questionIDs, models.StatusPending).
		Update("status", target)

	if result.Error != nil {
		log.Printf("Error updating question status to %s: %v", target, result.Error)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *Repository) SubjectExists(subjectID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subject{}).Where("id = ?", subjectID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListPending() ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Preload("Choices").
		Where("status = ?", models.StatusPending).
		Order("created_at asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
