// backend/internal/catalog/repository.go
package catalog

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

// GetQuizByID loads a quiz together with its approved question pool and each
// question's choices, in catalog order. Pending and rejected questions never
// reach a test-taker.
func (r *Repository) GetQuizByID(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.StatusApproved).Order("sort_order asc")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("label asc")
		}).
		First(&quiz, quizID).Error

	if err != nil {
		log.Printf("Error getting quiz %d: %v", quizID, err)
		return nil, err
	}
	return &quiz, nil
}

// GetQuizHeader loads the quiz row only, without its question pool.
func (r *Repository) GetQuizHeader(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.First(&quiz, quizID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *Repository) ListQuizzes() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.Order("created_at desc").Find(&quizzes).Error
	if err != nil {
		log.Printf("Error listing quizzes: %v", err)
		return nil, err
	}
	return quizzes, nil
}

func (r *Repository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Preload("Subjects").Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// DashboardStats aggregates a user's attempt history for the dashboard view.
type DashboardStats struct {
	TotalAttempts int64   `json:"total_attempts"`
	TotalScore    float64 `json:"total_score"`
}

func (r *Repository) GetDashboardStats(userID uint) (*DashboardStats, error) {
	var stats DashboardStats

	err := r.db.Raw(`
        SELECT COUNT(*) as total_attempts, COALESCE(SUM(score), 0) as total_score
        FROM quiz_attempts
        WHERE user_id = ? AND deleted_at IS NULL
    `, userID).Scan(&stats).Error

	if err != nil {
		log.Printf("Error getting dashboard stats for user %d: %v", userID, err)
		return nil, err
	}

	return &stats, nil
}
