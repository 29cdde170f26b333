package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a directory record; the cart engine only ever stores an opaque
// reference to one on a tab.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Phone     string    `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
