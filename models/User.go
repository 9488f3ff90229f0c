package models

import "gorm.io/gorm"

// User represents an application account that can authenticate with the platform.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	IsMetric     bool `gorm:"not null;default:false"`
}

const (
	SystemMetric   = "metric"
	SystemImperial = "imperial"
)

// MeasurementSystem reports the display system preferred by the user.
func (u User) MeasurementSystem() string {
	if u.IsMetric {
		return SystemMetric
	}
	return SystemImperial
}
