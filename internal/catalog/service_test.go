package catalog

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mock-platform/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Subject{},
		&models.Question{},
		&models.Choice{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.UserAnswer{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestGetQuizHeaderNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))

	if _, err := service.GetQuizHeader(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Got %v, want ErrNotFound", err)
	}
}

func TestGetDashboardAggregatesUserAttempts(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))

	quiz := models.Quiz{Title: "Mock #1"}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("Failed to seed quiz: %v", err)
	}

	attempts := []models.QuizAttempt{
		{UserID: 1, QuizID: quiz.ID, Score: 12.5},
		{UserID: 1, QuizID: quiz.ID, Score: -0.66},
		{UserID: 2, QuizID: quiz.ID, Score: 99},
	}
	for i := range attempts {
		if err := db.Create(&attempts[i]).Error; err != nil {
			t.Fatalf("Failed to seed attempt: %v", err)
		}
	}

	dashboard, err := service.GetDashboard(1)
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}

	if dashboard.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2 (other users excluded)", dashboard.TotalAttempts)
	}
	if math.Abs(dashboard.TotalScore-11.84) > 1e-9 {
		t.Errorf("TotalScore = %v, want 11.84", dashboard.TotalScore)
	}
	if len(dashboard.Quizzes) != 1 {
		t.Errorf("Dashboard lists %d quizzes, want 1", len(dashboard.Quizzes))
	}
}

func TestGetDashboardEmptyHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))

	dashboard, err := service.GetDashboard(1)
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if dashboard.TotalAttempts != 0 || dashboard.TotalScore != 0 {
		t.Errorf("Empty history yielded %d attempts, score %v", dashboard.TotalAttempts, dashboard.TotalScore)
	}
}

func TestListCategoriesPreloadsSubjects(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db))

	category := models.Category{Name: "State GK", Slug: "state-gk"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	subject := models.Subject{CategoryID: category.ID, Name: "History", Slug: "history"}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("Failed to seed subject: %v", err)
	}

	categories, err := service.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 1 || len(categories[0].Subjects) != 1 {
		t.Fatalf("Got %+v, want one category with one subject", categories)
	}
}
