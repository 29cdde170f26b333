package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chihoangvnn/sss-sub001/internal/cart"
	"github.com/chihoangvnn/sss-sub001/internal/dto"
	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/service"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubCatalog serves a fixed product list without Redis or a DB.
type stubCatalog struct {
	products []model.Product
}

func (s *stubCatalog) Snapshot() []model.Product { return s.products }

func (s *stubCatalog) FindByID(id uuid.UUID) (model.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, cart.ErrProductNotFound
}

func (s *stubCatalog) FindByBarcode(_ context.Context, code string) (model.Product, error) {
	for _, p := range s.products {
		if p.SKU == code || p.ItemCode == code {
			return p, nil
		}
	}
	return model.Product{}, cart.ErrProductNotFound
}

func (s *stubCatalog) Refresh(_ context.Context) error                     { return nil }
func (s *stubCatalog) StartRefreshLoop(_ context.Context, _ time.Duration) {}

var _ service.CatalogService = (*stubCatalog)(nil)

type stubCustomers struct{}

func (stubCustomers) Search(_ context.Context, _ string) ([]model.Customer, error) {
	return nil, nil
}
func (stubCustomers) ResolveRef(_ context.Context, id uuid.UUID) (*tabs.CustomerRef, error) {
	return &tabs.CustomerRef{ID: id, Name: "Khách lẻ"}, nil
}

var _ service.CustomerService = stubCustomers{}

type stubCheckout struct{ err error }

func (s *stubCheckout) Checkout(_ context.Context, tabID int, _ dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CheckoutResponse{OrderID: uuid.NewString(), TabID: tabID, Status: "pending"}, nil
}
func (s *stubCheckout) Complete(_ context.Context, _ int) error { return s.err }

var _ service.CheckoutService = (*stubCheckout)(nil)

func testRouter(catalog *stubCatalog, manager *tabs.Manager, checkout service.CheckoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTabsHandler(manager, catalog, stubCustomers{}, checkout)

	r := gin.New()
	t := r.Group("/v1/tabs")
	t.GET("", h.List)
	t.POST("/keypress", h.Keypress)
	t.POST("/:id/lines", h.AddLine)
	t.POST("/:id/duplicate", h.Duplicate)
	t.POST("/:id/checkout", h.Checkout)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAddLineByBarcode(t *testing.T) {
	p := model.Product{ID: uuid.New(), SKU: "MILK-01", ItemCode: "893001", Name: "Sữa tươi", Price: decimal.RequireFromString("32000"), Stock: 6}
	manager := tabs.NewManager()
	r := testRouter(&stubCatalog{products: []model.Product{p}}, manager, &stubCheckout{})

	w := doJSON(t, r, http.MethodPost, "/v1/tabs/1/lines", dto.AddLineRequest{Barcode: "893001"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.TabResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "draft", resp.Status)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "MILK-01", resp.Lines[0].SKU)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("32000")))
}

func TestAddLineUnknownBarcodeIs404(t *testing.T) {
	manager := tabs.NewManager()
	r := testRouter(&stubCatalog{}, manager, &stubCheckout{})

	w := doJSON(t, r, http.MethodPost, "/v1/tabs/1/lines", dto.AddLineRequest{Barcode: "???"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// No cart mutation on a failed scan
	v, _ := manager.Snapshot(1)
	assert.Equal(t, tabs.StatusEmpty, v.Status)
}

func TestAddLineOutOfStockIs409(t *testing.T) {
	p := model.Product{ID: uuid.New(), SKU: "EGG-10", Name: "Trứng vỉ 10", Price: decimal.RequireFromString("28000"), Stock: 1}
	manager := tabs.NewManager()
	r := testRouter(&stubCatalog{products: []model.Product{p}}, manager, &stubCheckout{})

	w := doJSON(t, r, http.MethodPost, "/v1/tabs/2/lines", dto.AddLineRequest{ProductID: p.ID.String()})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/tabs/2/lines", dto.AddLineRequest{ProductID: p.ID.String()})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDuplicateOccupiedTargetIs409(t *testing.T) {
	p := model.Product{ID: uuid.New(), SKU: "TEA-02", Name: "Trà xanh", Price: decimal.RequireFromString("10000"), Stock: 50}
	manager := tabs.NewManager()
	r := testRouter(&stubCatalog{products: []model.Product{p}}, manager, &stubCheckout{})

	for _, tab := range []int{1, 2} {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/v1/tabs/%d/lines", tab), dto.AddLineRequest{ProductID: p.ID.String()})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/v1/tabs/1/duplicate", dto.DuplicateTabRequest{TargetTabID: 2})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestKeypressSwitchesTab(t *testing.T) {
	manager := tabs.NewManager()
	r := testRouter(&stubCatalog{}, manager, &stubCheckout{})

	w := doJSON(t, r, http.MethodPost, "/v1/tabs/keypress", dto.KeypressRequest{Key: "3"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.KeypressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "switch-tab", resp.Action)
	assert.Equal(t, 3, resp.ActiveTabID)
	assert.Equal(t, 3, manager.ActiveID())

	// Typing in an input suppresses the shortcut
	w = doJSON(t, r, http.MethodPost, "/v1/tabs/keypress", dto.KeypressRequest{Key: "1", TypingInInput: true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "none", resp.Action)
	assert.Equal(t, 3, manager.ActiveID())
}

func TestCheckoutFailureIs502(t *testing.T) {
	p := model.Product{ID: uuid.New(), SKU: "PHO-01", Name: "Phở bò", Price: decimal.RequireFromString("45000"), Stock: 9}
	manager := tabs.NewManager()
	failing := &stubCheckout{err: fmt.Errorf("%w: connection refused", cart.ErrOrderSubmissionFailed)}
	r := testRouter(&stubCatalog{products: []model.Product{p}}, manager, failing)

	w := doJSON(t, r, http.MethodPost, "/v1/tabs/1/lines", dto.AddLineRequest{ProductID: p.ID.String()})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/tabs/1/checkout", dto.CheckoutRequest{})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
