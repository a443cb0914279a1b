// backend/internal/moderation/service.go
package moderation

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"mock-platform/internal/models"
	"mock-platform/pkg/cache"
)

// ErrValidation marks a malformed submission, rejected before anything is
// persisted.
var ErrValidation = errors.New("validation error")

var choiceLabels = []string{"A", "B", "C", "D"}

// QuestionSubmission mirrors the public contribution form: exactly four
// options with one designated correct.
type QuestionSubmission struct {
	SubjectID     uint     `json:"subject_id"`
	Text          string   `json:"text"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"` // 1-based index into Options
}

type Service struct {
	repo  *Repository
	cache *cache.RedisCache
}

func NewService(repo *Repository, redisCache *cache.RedisCache) *Service {
	return &Service{
		repo:  repo,
		cache: redisCache,
	}
}

// SubmitQuestion validates a user contribution and creates the pending
// question with its four choices atomically. Exactly one choice carries the
// correct flag.
func (s *Service) SubmitQuestion(userID uint, sub QuestionSubmission) (*models.Question, error) {
	if err := validateSubmission(&sub); err != nil {
		return nil, err
	}

	exists, err := s.repo.SubjectExists(sub.SubjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: unknown subject", ErrValidation)
	}

	question := &models.Question{
		SubjectID:     sub.SubjectID,
		Text:          strings.TrimSpace(sub.Text),
		Explanation:   strings.TrimSpace(sub.Explanation),
		Difficulty:    sub.Difficulty,
		Status:        models.StatusPending,
		SubmittedByID: &userID,
	}

	choices := make([]models.Choice, len(sub.Options))
	for i, text := range sub.Options {
		choices[i] = models.Choice{
			Text:      strings.TrimSpace(text),
			Label:     choiceLabels[i],
			IsCorrect: i+1 == sub.CorrectOption,
		}
	}

	if err := s.repo.CreateQuestionWithChoices(question, choices); err != nil {
		return nil, err
	}

	log.Printf("User %d submitted question %d for review", userID, question.ID)
	question.Choices = choices
	return question, nil
}

// Moderate applies the approve/reject decision to a batch of pending
// questions. Rejected questions are retained, not deleted. Already-moderated
// ids in the batch are left untouched.
func (s *Service) Moderate(questionIDs []uint, target string) (int64, error) {
	if target != models.StatusApproved && target != models.StatusRejected {
		return 0, fmt.Errorf("%w: invalid target status %q", ErrValidation, target)
	}
	if len(questionIDs) == 0 {
		return 0, fmt.Errorf("%w: no question ids given", ErrValidation)
	}

	updated, err := s.repo.UpdateStatus(questionIDs, target)
	if err != nil {
		return 0, err
	}

	// Approved questions may join quizzes whose snapshots are cached.
	if updated > 0 && s.cache != nil {
		if err := s.cache.InvalidateAllQuestionSets(); err != nil {
			log.Printf("Error invalidating question set cache: %v", err)
		}
	}

	log.Printf("Moderated %d of %d questions to %s", updated, len(questionIDs), target)
	return updated, nil
}

func (s *Service) ListPending() ([]models.Question, error) {
	return s.repo.ListPending()
}

func validateSubmission(sub *QuestionSubmission) error {
	if strings.TrimSpace(sub.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if sub.SubjectID == 0 {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}

	switch sub.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return fmt.Errorf("%w: invalid difficulty %q", ErrValidation, sub.Difficulty)
	}

	if len(sub.Options) != len(choiceLabels) {
		return fmt.Errorf("%w: exactly %d options are required", ErrValidation, len(choiceLabels))
	}
	for i, opt := range sub.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %s is empty", ErrValidation, choiceLabels[i])
		}
	}

	if sub.CorrectOption < 1 || sub.CorrectOption > len(sub.Options) {
		return fmt.Errorf("%w: correct option must be between 1 and %d", ErrValidation, len(sub.Options))
	}

	return nil
}
