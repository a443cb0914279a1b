// backend/internal/models/dto.go
package models

import "time"

// QuestionSetDTO is the materialized snapshot handed to a test-taker when an
// attempt starts. It never carries correctness flags.
type QuestionSetDTO struct {
	QuizID    uint          `json:"quiz_id"`
	Title     string        `json:"title"`
	TimeLimit uint          `json:"time_limit_minutes"`
	Questions []QuestionDTO `json:"questions"`
}

type QuestionDTO struct {
	ID      uint        `json:"id"`
	Text    string      `json:"text"`
	Choices []ChoiceDTO `json:"choices"`
}

type ChoiceDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

func (q Question) ToDTO() QuestionDTO {
	choiceDTOs := make([]ChoiceDTO, len(q.Choices))
	for i, c := range q.Choices {
		choiceDTOs[i] = ChoiceDTO{
			ID:    c.ID,
			Label: c.Label,
			Text:  c.Text,
		}
	}

	return QuestionDTO{
		ID:      q.ID,
		Text:    q.Text,
		Choices: choiceDTOs,
	}
}

// AttemptDetailDTO is the post-scoring review view. Correctness and
// explanations are safe to expose here.
type AttemptDetailDTO struct {
	AttemptID    uint           `json:"attempt_id"`
	QuizID       uint           `json:"quiz_id"`
	Score        float64        `json:"score"`
	TotalCorrect int            `json:"total_correct"`
	TotalWrong   int            `json:"total_wrong"`
	CompletedAt  time.Time      `json:"completed_at"`
	Answers      []AnswerReview `json:"answers"`
}

type AnswerReview struct {
	QuestionID   uint   `json:"question_id"`
	QuestionText string `json:"question_text"`
	Explanation  string `json:"explanation"`
	ChosenID     *uint  `json:"chosen_choice_id"`
	ChosenText   string `json:"chosen_choice_text,omitempty"`
	Correct      bool   `json:"correct"`
	Skipped      bool   `json:"skipped"`
}
