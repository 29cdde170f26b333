package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chihoangvnn/sss-sub001/internal/cart"
	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/repository"
)

const barcodeCacheTTL = 4 * time.Hour

// CatalogService serves the read-only product snapshot every cart and the
// stock guard read. The snapshot refreshes on a polling cadence; in between,
// stock numbers are advisory (last-known) by design — the authoritative
// decrement happens at order creation.
type CatalogService interface {
	// Snapshot returns the current product list (copy, safe to hold).
	Snapshot() []model.Product
	// FindByID resolves a product from the snapshot.
	FindByID(id uuid.UUID) (model.Product, error)
	// FindByBarcode resolves a decoded barcode by exact SKU or item-code
	// match. Misses against the snapshot fall through to Redis, then the DB.
	FindByBarcode(ctx context.Context, code string) (model.Product, error)
	// Refresh reloads the snapshot from the repository.
	Refresh(ctx context.Context) error
	// StartRefreshLoop refreshes on a ticker until ctx is cancelled.
	StartRefreshLoop(ctx context.Context, interval time.Duration)
}

type catalogService struct {
	repo repository.ProductRepository
	rdb  *redis.Client

	mu       sync.RWMutex
	products []model.Product
	byID     map[uuid.UUID]int
	byCode   map[string]int
}

func NewCatalogService(repo repository.ProductRepository, rdb *redis.Client) CatalogService {
	return &catalogService{
		repo:   repo,
		rdb:    rdb,
		byID:   make(map[uuid.UUID]int),
		byCode: make(map[string]int),
	}
}

func (s *catalogService) Refresh(ctx context.Context) error {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	byID := make(map[uuid.UUID]int, len(products))
	byCode := make(map[string]int, len(products)*2)
	for i, p := range products {
		byID[p.ID] = i
		if code := normalizeCode(p.SKU); code != "" {
			byCode[code] = i
		}
		if code := normalizeCode(p.ItemCode); code != "" {
			if _, taken := byCode[code]; !taken {
				byCode[code] = i
			}
		}
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.byCode = byCode
	s.mu.Unlock()
	return nil
}

func (s *catalogService) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					log.Warn().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
				}
			}
		}
	}()
}

func (s *catalogService) Snapshot() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *catalogService) FindByID(id uuid.UUID) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.byID[id]; ok {
		return s.products[i], nil
	}
	return model.Product{}, fmt.Errorf("%w: id %s", cart.ErrProductNotFound, id)
}

func (s *catalogService) FindByBarcode(ctx context.Context, code string) (model.Product, error) {
	norm := normalizeCode(code)
	if norm == "" {
		return model.Product{}, fmt.Errorf("%w: empty barcode", cart.ErrProductNotFound)
	}

	s.mu.RLock()
	if i, ok := s.byCode[norm]; ok {
		p := s.products[i]
		s.mu.RUnlock()
		return p, nil
	}
	s.mu.RUnlock()

	// Snapshot miss — the product may have been created since the last
	// refresh. Try the Redis cache, then the DB.
	cacheKey := "barcode:" + norm
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var p model.Product
			if jsonErr := json.Unmarshal(cached, &p); jsonErr == nil {
				return p, nil
			}
		}
	}

	p, err := s.repo.FindByCode(ctx, norm)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Product{}, fmt.Errorf("%w: barcode %q", cart.ErrProductNotFound, code)
		}
		return model.Product{}, err
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(p); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, barcodeCacheTTL).Err()
		}
	}
	return *p, nil
}

// normalizeCode trims and upper-cases barcodes/SKUs so scanner input matches
// however the code was entered in the dashboard.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
