// backend/internal/subscription/service.go
package subscription

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"mock-platform/internal/models"
)

// ErrAccessDenied marks the expected "not subscribed" outcome at the premium
// gate. It is user-actionable, not a system fault.
var ErrAccessDenied = errors.New("subscription required")

var ErrPlanNotFound = errors.New("plan not found")

type Service struct {
	repo *Repository
	// now is swappable so expiry can be tested without sleeping.
	now func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// CanAccess is the premium gate. Free quizzes are always allowed; premium
// quizzes require an active, unexpired subscription. Pure predicate over the
// ledger, no side effects.
func (s *Service) CanAccess(userID uint, quiz *models.Quiz) (bool, error) {
	if !quiz.IsPremium {
		return true, nil
	}

	return s.repo.HasActiveSubscription(userID, s.now())
}

// Subscribe opens a new subscription period for the user. The end date is
// computed once here from the plan duration and never re-derived.
func (s *Service) Subscribe(userID, planID uint) (*models.UserSubscription, error) {
	plan, err := s.repo.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	start := s.now()
	sub := &models.UserSubscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, plan.DurationDays),
		IsActive:  true,
	}

	if err := s.repo.CreateSubscription(sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) ListPlans() ([]models.SubscriptionPlan, error) {
	return s.repo.ListPlans()
}
