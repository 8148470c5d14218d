package auth

import (
	"time"

	"go-hrms/internal/domain"

	"github.com/google/uuid"
)

// Identity is a login credential. It is never hard-deleted; IsActive
// switches it off.
type Identity struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name       string      `gorm:"type:varchar(255);not null"`
	Email      string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string      `gorm:"type:varchar(255);not null" json:"-"`
	Role       domain.Role `gorm:"type:varchar(20);not null;default:'Employee'"`
	Department string      `gorm:"type:varchar(100)"`
	IsActive   bool        `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Identity) TableName() string {
	return "identities"
}
