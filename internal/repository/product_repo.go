package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chihoangvnn/sss-sub001/internal/model"
)

// ProductRepository is the read-only data access contract for the catalog.
// The cart engine never writes products — CRUD belongs to the admin
// dashboard. Services depend on this interface, not on GORM, so unit tests
// can swap in in-memory stubs.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindByCode matches a decoded barcode exactly against SKU first, then
	// item code.
	FindByCode(ctx context.Context, code string) (*model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("sku = ?", code).
		First(&p).Error
	if err == nil {
		return &p, nil
	}
	err = r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("item_code = ?", code).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
