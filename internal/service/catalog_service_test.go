package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chihoangvnn/sss-sub001/internal/cart"
	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/repository"
)

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products []model.Product
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	return r.products, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].SKU == code || r.products[i].ItemCode == code {
			return &r.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func catalogProducts() []model.Product {
	return []model.Product{
		{ID: uuid.New(), SKU: "COFFEE-01", ItemCode: "8934567001", Name: "Cà phê sữa", Price: decimal.RequireFromString("29000"), Stock: 12},
		{ID: uuid.New(), SKU: "RICE-5KG", ItemCode: "8934567002", Name: "Gạo ST25 5kg", Price: decimal.RequireFromString("185000"), Stock: 7},
	}
}

func TestCatalogSnapshotAndFindByID(t *testing.T) {
	repo := &stubProductRepo{products: catalogProducts()}
	svc := NewCatalogService(repo, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	snap := svc.Snapshot()
	assert.Len(t, snap, 2)

	p, err := svc.FindByID(snap[0].ID)
	require.NoError(t, err)
	assert.Equal(t, snap[0].SKU, p.SKU)

	_, err = svc.FindByID(uuid.New())
	assert.ErrorIs(t, err, cart.ErrProductNotFound)
}

func TestFindByBarcodeMatchesSKUAndItemCode(t *testing.T) {
	repo := &stubProductRepo{products: catalogProducts()}
	svc := NewCatalogService(repo, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	p, err := svc.FindByBarcode(context.Background(), "COFFEE-01")
	require.NoError(t, err)
	assert.Equal(t, "Cà phê sữa", p.Name)

	// Item code works too, and scanner input is normalized
	p, err = svc.FindByBarcode(context.Background(), "  8934567002 ")
	require.NoError(t, err)
	assert.Equal(t, "RICE-5KG", p.SKU)

	p, err = svc.FindByBarcode(context.Background(), "coffee-01")
	require.NoError(t, err)
	assert.Equal(t, "COFFEE-01", p.SKU)
}

func TestFindByBarcodeNotFound(t *testing.T) {
	repo := &stubProductRepo{products: catalogProducts()}
	svc := NewCatalogService(repo, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.FindByBarcode(context.Background(), "NOPE-404")
	assert.ErrorIs(t, err, cart.ErrProductNotFound)

	_, err = svc.FindByBarcode(context.Background(), "")
	assert.ErrorIs(t, err, cart.ErrProductNotFound)
}

func TestFindByBarcodeFallsThroughToRepoOnSnapshotMiss(t *testing.T) {
	repo := &stubProductRepo{products: catalogProducts()}
	svc := NewCatalogService(repo, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	// A product created after the last refresh is still resolvable
	fresh := model.Product{ID: uuid.New(), SKU: "NEW-SKU", Name: "Hàng mới", Price: decimal.RequireFromString("9000"), Stock: 3}
	repo.products = append(repo.products, fresh)

	p, err := svc.FindByBarcode(context.Background(), "NEW-SKU")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, p.ID)
}
