// backend/internal/subscription/repository.go
package subscription

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

// HasActiveSubscription reports whether the user holds at least one active,
// unexpired subscription at the given instant.
func (r *Repository) HasActiveSubscription(userID uint, at time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserSubscription{}).
		Where("user_id = ? AND is_active = ? AND end_date >= ?", userID, true, at).
		Count(&count).Error
	if err != nil {
		log.Printf("Error checking subscription for user %d: %v", userID, err)
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateSubscription(sub *models.UserSubscription) error {
	err := r.db.Create(sub).Error
	if err != nil {
		log.Printf("Error creating subscription for user %d: %v", sub.UserID, err)
		return err
	}
	return nil
}

func (r *Repository) GetPlanByID(planID uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, planID).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) ListPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Order("price asc").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
