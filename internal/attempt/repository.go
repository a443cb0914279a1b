// backend/internal/attempt/repository.go
package attempt

import (
	"log"
	"time"

	"gorm.io/gorm"

	"mock-platform/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveAttempt persists one scored submission as a unit: the attempt row, one
// answer row per question, then the final totals. Runs inside a single
// transaction so a crash mid-loop leaves nothing visible.
func (r *Repository) SaveAttempt(attempt *models.QuizAttempt, answers []models.UserAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			log.Printf("Error creating attempt for user %d quiz %d: %v", attempt.UserID, attempt.QuizID, err)
			return err
		}

		for i := range answers {
			answers[i].AttemptID = attempt.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				log.Printf("Error saving answer for attempt %d question %d: %v", attempt.ID, answers[i].QuestionID, err)
				return err
			}
		}

		return tx.Model(attempt).Updates(map[string]interface{}{
			"score":         attempt.Score,
			"total_correct": attempt.TotalCorrect,
			"total_wrong":   attempt.TotalWrong,
			"completed_at":  time.Now(),
		}).Error
	})
}

// GetAttemptForUser scopes the lookup to the owner. Someone else's attempt id
// behaves exactly like a missing one.
func (r *Repository) GetAttemptForUser(attemptID, userID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.db.Preload("Answers").
		Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *Repository) GetQuestionsByIDs(ids []uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("label asc")
	}).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		log.Printf("Error loading questions for review: %v", err)
		return nil, err
	}
	return questions, nil
}
