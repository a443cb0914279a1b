package moderation

import (
	"errors"
	"fmt"
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
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedSubject(t *testing.T, db *gorm.DB) *models.Subject {
	t.Helper()
	subject := models.Subject{CategoryID: 1, Name: "General Knowledge", Slug: fmt.Sprintf("gk-%s", t.Name())}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("Failed to seed subject: %v", err)
	}
	return &subject
}

func validSubmission(subjectID uint) QuestionSubmission {
	return QuestionSubmission{
		SubjectID:     subjectID,
		Text:          "Which article of the constitution covers this?",
		Explanation:   "See part III.",
		Difficulty:    models.DifficultyMedium,
		Options:       []string{"Article 12", "Article 14", "Article 19", "Article 21"},
		CorrectOption: 2,
	}
}

func TestSubmitQuestionCreatesPendingWithFourChoices(t *testing.T) {
	db := setupTestDB(t)
	subject := seedSubject(t, db)
	service := NewService(NewRepository(db), nil)

	question, err := service.SubmitQuestion(9, validSubmission(subject.ID))
	if err != nil {
		t.Fatalf("SubmitQuestion failed: %v", err)
	}

	if question.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", question.Status)
	}
	if question.SubmittedByID == nil || *question.SubmittedByID != 9 {
		t.Errorf("SubmittedByID = %v, want 9", question.SubmittedByID)
	}

	var choices []models.Choice
	if err := db.Where("question_id = ?", question.ID).Order("label asc").Find(&choices).Error; err != nil {
		t.Fatalf("Failed to load choices: %v", err)
	}
	if len(choices) != 4 {
		t.Fatalf("Got %d choices, want exactly 4", len(choices))
	}

	correctCount := 0
	for i, c := range choices {
		wantLabel := []string{"A", "B", "C", "D"}[i]
		if c.Label != wantLabel {
			t.Errorf("Choice %d label = %q, want %q", i, c.Label, wantLabel)
		}
		if c.IsCorrect {
			correctCount++
			if c.Label != "B" {
				t.Errorf("Correct flag on option %s, want B (designated option 2)", c.Label)
			}
		}
	}
	if correctCount != 1 {
		t.Errorf("Got %d correct choices, want exactly 1", correctCount)
	}
}

func TestSubmitQuestionValidation(t *testing.T) {
	db := setupTestDB(t)
	subject := seedSubject(t, db)
	service := NewService(NewRepository(db), nil)

	cases := []struct {
		name   string
		mutate func(*QuestionSubmission)
	}{
		{"missing text", func(s *QuestionSubmission) { s.Text = "  " }},
		{"missing subject", func(s *QuestionSubmission) { s.SubjectID = 0 }},
		{"unknown difficulty", func(s *QuestionSubmission) { s.Difficulty = "impossible" }},
		{"three options", func(s *QuestionSubmission) { s.Options = s.Options[:3] }},
		{"five options", func(s *QuestionSubmission) { s.Options = append(s.Options, "Article 32") }},
		{"blank option", func(s *QuestionSubmission) { s.Options[1] = "" }},
		{"no correct option", func(s *QuestionSubmission) { s.CorrectOption = 0 }},
		{"correct option out of range", func(s *QuestionSubmission) { s.CorrectOption = 5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission(subject.ID)
			tc.mutate(&sub)

			if _, err := service.SubmitQuestion(1, sub); !errors.Is(err, ErrValidation) {
				t.Errorf("Got %v, want ErrValidation", err)
			}
		})
	}

	// Nothing may be persisted by rejected submissions.
	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count != 0 {
		t.Errorf("%d questions persisted from invalid submissions, want 0", count)
	}
}

func TestSubmitQuestionUnknownSubject(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db), nil)

	if _, err := service.SubmitQuestion(1, validSubmission(42)); !errors.Is(err, ErrValidation) {
		t.Errorf("Got %v, want ErrValidation for unknown subject", err)
	}
}

func TestModerateTransitions(t *testing.T) {
	db := setupTestDB(t)
	subject := seedSubject(t, db)
	service := NewService(NewRepository(db), nil)

	var ids []uint
	for i := 0; i < 3; i++ {
		question, err := service.SubmitQuestion(1, validSubmission(subject.ID))
		if err != nil {
			t.Fatalf("SubmitQuestion failed: %v", err)
		}
		ids = append(ids, question.ID)
	}

	updated, err := service.Moderate(ids[:2], models.StatusApproved)
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if updated != 2 {
		t.Errorf("Moderate updated %d rows, want 2", updated)
	}

	updated, err = service.Moderate(ids[2:], models.StatusRejected)
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("Moderate updated %d rows, want 1", updated)
	}

	var statuses []string
	if err := db.Model(&models.Question{}).Order("id asc").Pluck("status", &statuses).Error; err != nil {
		t.Fatalf("Failed to read statuses: %v", err)
	}
	want := []string{models.StatusApproved, models.StatusApproved, models.StatusRejected}
	for i, status := range statuses {
		if status != want[i] {
			t.Errorf("Question %d status = %q, want %q", ids[i], status, want[i])
		}
	}

	// Rejected questions are retained, not deleted.
	var rejected models.Question
	if err := db.First(&rejected, ids[2]).Error; err != nil {
		t.Errorf("Rejected question was removed: %v", err)
	}
}

func TestModerateOnlyTouchesPendingQuestions(t *testing.T) {
	db := setupTestDB(t)
	subject := seedSubject(t, db)
	service := NewService(NewRepository(db), nil)

	question, err := service.SubmitQuestion(1, validSubmission(subject.ID))
	if err != nil {
		t.Fatalf("SubmitQuestion failed: %v", err)
	}

	if _, err := service.Moderate([]uint{question.ID}, models.StatusRejected); err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}

	// A second decision on the same question is a no-op; there is no
	// rejected -> approved transition.
	updated, err := service.Moderate([]uint{question.ID}, models.StatusApproved)
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("Moderate re-transitioned %d settled questions, want 0", updated)
	}
}

func TestModerateRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(NewRepository(db), nil)

	if _, err := service.Moderate([]uint{1}, "deleted"); !errors.Is(err, ErrValidation) {
		t.Errorf("Got %v, want ErrValidation for invalid target", err)
	}
	if _, err := service.Moderate(nil, models.StatusApproved); !errors.Is(err, ErrValidation) {
		t.Errorf("Got %v, want ErrValidation for empty id list", err)
	}
}

func TestListPending(t *testing.T) {
	db := setupTestDB(t)
	subject := seedSubject(t, db)
	service := NewService(NewRepository(db), nil)

	question, err := service.SubmitQuestion(1, validSubmission(subject.ID))
	if err != nil {
		t.Fatalf("SubmitQuestion failed: %v", err)
	}
	if _, err := service.Moderate([]uint{question.ID}, models.StatusApproved); err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}

	if _, err := service.SubmitQuestion(2, validSubmission(subject.ID)); err != nil {
		t.Fatalf("SubmitQuestion failed: %v", err)
	}

	pending, err := service.ListPending()
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Got %d pending questions, want 1", len(pending))
	}
	if len(pending[0].Choices) != 4 {
		t.Errorf("Pending question loaded with %d choices, want 4", len(pending[0].Choices))
	}
}
