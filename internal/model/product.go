package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog row as far as the cart engine is concerned.
// Unit-policy columns may be absent on legacy rows; callers must go through
// unitpolicy.Resolve instead of reading them directly.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU      string    `gorm:"uniqueIndex;not null"`
	ItemCode string    `gorm:"index"`
	Name     string    `gorm:"index;not null"`
	// Price is the unit price in display currency (VND). Whole-đồng amounts
	// in practice; internal math uses minor units, never this value raw.
	Price decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Stock int             `gorm:"not null;default:0"`

	// Unit policy — normalized by unitpolicy.Resolve.
	UnitType      string `gorm:"not null;default:'count'"`
	Unit          string
	AllowDecimals bool            `gorm:"not null;default:false"`
	MinQuantity   decimal.Decimal `gorm:"type:decimal(10,3)"`
	QuantityStep  decimal.Decimal `gorm:"type:decimal(10,3)"`

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
