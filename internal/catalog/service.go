// backend/internal/catalog/service.go
package catalog

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"mock-platform/internal/models"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetQuizHeader loads the quiz row without its question pool; enough for
// access decisions and listings.
func (s *Service) GetQuizHeader(quizID uint) (*models.Quiz, error) {
	quiz, err := s.repo.GetQuizHeader(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *Service) ListQuizzes() ([]models.Quiz, error) {
	return s.repo.ListQuizzes()
}

func (s *Service) ListCategories() ([]models.Category, error) {
	return s.repo.ListCategories()
}

// Dashboard mirrors the student landing view: attempt totals plus the quizzes
// currently on offer.
type Dashboard struct {
	TotalAttempts int64         `json:"total_attempts"`
	TotalScore    float64       `json:"total_score"`
	Quizzes       []models.Quiz `json:"quizzes"`
}

func (s *Service) GetDashboard(userID uint) (*Dashboard, error) {
	stats, err := s.repo.GetDashboardStats(userID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.repo.ListQuizzes()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalAttempts: stats.TotalAttempts,
		TotalScore:    math.Round(stats.TotalScore*100) / 100,
		Quizzes:       quizzes,
	}, nil
}
