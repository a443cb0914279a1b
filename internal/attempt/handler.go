// backend/internal/attempt/handler.go
package attempt

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mock-platform/internal/auth"
	"mock-platform/internal/catalog"
	"mock-platform/internal/subscription"
)

type Handler struct {
	service *Service
	catalog *catalog.Service
	gate    *subscription.Service
}

func NewHandler(service *Service, catalogService *catalog.Service, gate *subscription.Service) *Handler {
	return &Handler{
		service: service,
		catalog: catalogService,
		gate:    gate,
	}
}

// StartQuiz authorizes the user at the premium gate, then hands back the
// materialized question set. The engine itself does not re-check access.
func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := quizIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	quiz, err := h.catalog.GetQuizHeader(quizID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	allowed, err := h.gate.CanAccess(userID, quiz)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !allowed {
		log.Printf("User %d denied premium quiz %d", userID, quizID)
		http.Error(w, subscription.ErrAccessDenied.Error(), http.StatusForbidden)
		return
	}

	set, err := h.service.StartAttempt(quizID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrNoQuestions) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(set)
}

type SubmitRequest struct {
	// Keyed by question id; a question absent from the map is a skip.
	Answers map[uint]uint `json:"answers"`
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quizID, err := quizIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	attempt, err := h.service.SubmitAttempt(userID, quizID, req.Answers)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrNoQuestions) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Storage failure; nothing was persisted, safe to retry.
		log.Printf("Error submitting attempt for user %d quiz %d: %v", userID, quizID, err)
		http.Error(w, "Submission failed, please retry", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(attempt)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	attemptID, err := strconv.ParseUint(vars["attemptID"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid attempt id", http.StatusBadRequest)
		return
	}

	detail, err := h.service.GetResult(userID, uint(attemptID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Attempt not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(detail)
}

func quizIDFromRequest(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	quizID, err := strconv.ParseUint(vars["quizID"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(quizID), nil
}
