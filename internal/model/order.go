package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a submitted checkout. Total is the display-precision decimal the
// arithmetic core produced — the server-side contract is that it matches an
// independent per-line recomputation exactly.
type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TabID      int             `gorm:"not null"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"`
	Total      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status     string          `gorm:"not null;default:'pending'"`
	AutoPrint  bool            `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items    []OrderItem `gorm:"foreignKey:OrderID"`
	Customer *Customer   `gorm:"foreignKey:CustomerID"`
}

// OrderItem is one cart line at submission time. Quantity keeps thousandth
// precision for weight/volume products.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
