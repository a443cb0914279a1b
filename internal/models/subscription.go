// backend/internal/models/subscription.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionPlan struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Name         string         `json:"name" gorm:"not null"`
	Price        float64        `json:"price"`
	DurationDays int            `json:"duration_days" gorm:"not null"`
}

type UserSubscription struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `json:"deleted_at" gorm:"index"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	PlanID    uint             `json:"plan_id" gorm:"not null"`
	Plan      SubscriptionPlan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date" gorm:"index"`
	IsActive  bool             `json:"is_active" gorm:"default:true"`
}
