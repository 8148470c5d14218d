package announcement

import (
	"time"

	"github.com/google/uuid"
)

// AudienceAll addresses every employee; any other value names a department.
const AudienceAll = "all"

type Announcement struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title     string     `gorm:"size:255;not null"`
	Content   string     `gorm:"type:text;not null"`
	Audience  string     `gorm:"size:100;not null;default:'all';index"`
	AuthorID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}
