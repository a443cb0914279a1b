// backend/internal/attempt/service.go
package attempt

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"mock-platform/internal/catalog"
	"mock-platform/internal/models"
	"mock-platform/pkg/cache"
)

var (
	// ErrNotFound covers both unknown ids and attempts owned by someone
	// else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrNoQuestions = errors.New("no questions available for quiz")
)

// Service drives one quiz-taking session to a scored result. It assumes the
// caller has already cleared the premium gate for this user/quiz pair and
// does not re-check it.
type Service struct {
	repo     *Repository
	catalog  *catalog.Repository
	cache    *cache.RedisCache
	defaults models.MarkingScheme
}

func NewService(repo *Repository, catalogRepo *catalog.Repository, redisCache *cache.RedisCache, defaults models.MarkingScheme) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalogRepo,
		cache:    redisCache,
		defaults: defaults,
	}
}

// StartAttempt materializes the quiz's question set for a test-taker. The
// snapshot carries no correctness flags. Read-through cached per quiz.
func (s *Service) StartAttempt(quizID uint) (*models.QuestionSetDTO, error) {
	if s.cache != nil {
		if set, err := s.cache.GetQuestionSet(quizID); err == nil {
			return set, nil
		}
	}

	quiz, err := s.catalog.GetQuizByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	set := &models.QuestionSetDTO{
		QuizID:    quiz.ID,
		Title:     quiz.Title,
		TimeLimit: quiz.TimeLimit,
		Questions: make([]models.QuestionDTO, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		set.Questions[i] = q.ToDTO()
	}

	if s.cache != nil {
		if err := s.cache.SetQuestionSet(set); err != nil {
			log.Printf("Error caching question set for quiz %d: %v", quizID, err)
		}
	}

	return set, nil
}

// SubmitAttempt scores one submission against the quiz's question set and
// persists it atomically. The answers mapping is keyed by question id; a
// missing key is a skip, and a choice id that does not belong to the question
// scores exactly like a skip rather than failing the attempt.
func (s *Service) SubmitAttempt(userID, quizID uint, answers map[uint]uint) (*models.QuizAttempt, error) {
	quiz, err := s.catalog.GetQuizByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	scheme := quiz.Marking(s.defaults)

	var (
		correctCount int
		wrongCount   int
		score        float64
	)

	userAnswers := make([]models.UserAnswer, 0, len(quiz.Questions))

	// One answer row per question in the set, answered or not.
	for _, question := range quiz.Questions {
		answer := models.UserAnswer{QuestionID: question.ID}

		if choiceID, provided := answers[question.ID]; provided {
			if choice := findChoice(question.Choices, choiceID); choice != nil {
				id := choice.ID
				answer.SelectedChoiceID = &id

				if choice.IsCorrect {
					correctCount++
					score += scheme.Positive
				} else {
					wrongCount++
					score -= scheme.Negative
				}
			} else {
				// Stale or tampered choice id; treat as a skip.
				log.Printf("Choice %d does not belong to question %d, recording skip", choiceID, question.ID)
			}
		}

		userAnswers = append(userAnswers, answer)
	}

	attempt := &models.QuizAttempt{
		UserID:       userID,
		QuizID:       quiz.ID,
		Score:        score,
		TotalCorrect: correctCount,
		TotalWrong:   wrongCount,
	}

	if err := s.repo.SaveAttempt(attempt, userAnswers); err != nil {
		return nil, err
	}

	return attempt, nil
}

// GetResult returns the completed attempt with its per-question review. The
// score is read back, never recomputed.
func (s *Service) GetResult(userID, attemptID uint) (*models.AttemptDetailDTO, error) {
	attempt, err := s.repo.GetAttemptForUser(attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	questionIDs := make([]uint, len(attempt.Answers))
	for i, a := range attempt.Answers {
		questionIDs[i] = a.QuestionID
	}

	questions, err := s.repo.GetQuestionsByIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	questionsByID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	detail := &models.AttemptDetailDTO{
		AttemptID:    attempt.ID,
		QuizID:       attempt.QuizID,
		Score:        attempt.Score,
		TotalCorrect: attempt.TotalCorrect,
		TotalWrong:   attempt.TotalWrong,
		CompletedAt:  attempt.CompletedAt,
		Answers:      make([]models.AnswerReview, 0, len(attempt.Answers)),
	}

	for _, a := range attempt.Answers {
		review := models.AnswerReview{
			QuestionID: a.QuestionID,
			ChosenID:   a.SelectedChoiceID,
			Skipped:    a.SelectedChoiceID == nil,
		}

		if q, ok := questionsByID[a.QuestionID]; ok {
			review.QuestionText = q.Text
			review.Explanation = q.Explanation

			if a.SelectedChoiceID != nil {
				if choice := findChoice(q.Choices, *a.SelectedChoiceID); choice != nil {
					review.ChosenText = choice.Text
					review.Correct = choice.IsCorrect
				}
			}
		}

		detail.Answers = append(detail.Answers, review)
	}

	return detail, nil
}

func findChoice(choices []models.Choice, choiceID uint) *models.Choice {
	for i := range choices {
		if choices[i].ID == choiceID {
			return &choices[i]
		}
	}
	return nil
}
