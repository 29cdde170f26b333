package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chihoangvnn/sss-sub001/internal/apierror"
	"github.com/chihoangvnn/sss-sub001/internal/dto"
	"github.com/chihoangvnn/sss-sub001/internal/keymap"
	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/service"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
)

// TabsHandler is the HTTP face of the tab manager. Every cart mutation the
// UI can trigger — click, scan, or shortcut — lands here and goes through
// the manager's operation surface, never at a cart directly.
type TabsHandler struct {
	manager   *tabs.Manager
	catalog   service.CatalogService
	customers service.CustomerService
	checkout  service.CheckoutService
}

func NewTabsHandler(
	manager *tabs.Manager,
	catalog service.CatalogService,
	customers service.CustomerService,
	checkout service.CheckoutService,
) *TabsHandler {
	return &TabsHandler{
		manager:   manager,
		catalog:   catalog,
		customers: customers,
		checkout:  checkout,
	}
}

func tabIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 || id > tabs.TabCount {
		respondError(c, tabs.ErrNoSuchTab)
		return 0, false
	}
	return id, true
}

// List returns all five tabs and the active pointer.
func (h *TabsHandler) List(c *gin.Context) {
	views := h.manager.Snapshots()
	out := make([]dto.TabResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.TabToResponse(v))
	}
	c.JSON(http.StatusOK, dto.TabListResponse{
		ActiveTabID: h.manager.ActiveID(),
		Tabs:        out,
	})
}

// Active returns the active tab.
func (h *TabsHandler) Active(c *gin.Context) {
	view, err := h.manager.Snapshot(h.manager.ActiveID())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TabToResponse(view))
}

// Activate switches the active tab; no cart is touched.
func (h *TabsHandler) Activate(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	if err := h.manager.SwitchToTab(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_tab_id": id})
}

// AddLine adds a product to a tab, by id or by decoded barcode. The barcode
// path is the same addOrIncrement as a manual add — a scan is just another
// input device.
func (h *TabsHandler) AddLine(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	var req dto.AddLineRequest
	if !bindAndValidate(c, &req) {
		return
	}

	product, err := h.resolveProduct(c, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.manager.AddToCart(id, product, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, id)
}

func (h *TabsHandler) resolveProduct(c *gin.Context, req dto.AddLineRequest) (model.Product, error) {
	if req.ProductID != "" {
		pid, err := uuid.Parse(req.ProductID)
		if err != nil {
			return model.Product{}, err
		}
		return h.catalog.FindByID(pid)
	}
	return h.catalog.FindByBarcode(c.Request.Context(), req.Barcode)
}

// SetLineQuantity replaces a line quantity; below the unit-policy floor the
// line is removed.
func (h *TabsHandler) SetLineQuantity(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	pid, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	var req dto.SetQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.manager.SetQuantity(id, pid, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, id)
}

// RemoveLine deletes one line.
func (h *TabsHandler) RemoveLine(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	pid, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	if err := h.manager.RemoveLine(id, pid); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, id)
}

// SetCustomer attaches a directory customer to the tab; empty id detaches.
func (h *TabsHandler) SetCustomer(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	var req dto.SetCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var ref *tabs.CustomerRef
	if req.CustomerID != "" {
		cid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid customer id"))
			return
		}
		ref, err = h.customers.ResolveRef(c.Request.Context(), cid)
		if err != nil {
			c.JSON(http.StatusNotFound, apierror.New("Customer not found"))
			return
		}
	}
	if err := h.manager.SetCustomer(id, ref); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, id)
}

// Clear resets one tab. The UI confirms before clearing a pending tab; the
// manager itself does not second-guess.
func (h *TabsHandler) Clear(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	if err := h.manager.ClearTab(id); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, id)
}

// ClearAll resets every tab. Without ?force=true, pending tabs are skipped
// and reported so the UI can raise its confirmation dialog.
func (h *TabsHandler) ClearAll(c *gin.Context) {
	force := c.Query("force") == "true"
	cleared, skipped := h.manager.ClearAllTabs(force)
	c.JSON(http.StatusOK, dto.ClearAllResponse{Cleared: cleared, SkippedPending: skipped})
}

// Duplicate copies this tab's cart and customer into an empty target tab.
func (h *TabsHandler) Duplicate(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	var req dto.DuplicateTabRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.manager.DuplicateTab(id, req.TargetTabID); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, req.TargetTabID)
}

// Checkout submits the tab's cart to the order service.
func (h *TabsHandler) Checkout(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.checkout.Checkout(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CompleteCheckout finishes a pending order and frees the tab.
func (h *TabsHandler) CompleteCheckout(c *gin.Context) {
	id, ok := tabIDParam(c)
	if !ok {
		return
	}
	if err := h.checkout.Complete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.respondTab(c, id)
}

// Keypress resolves a global key-down and applies tab switches server-side.
// Focus actions are returned for the UI to apply; switching is the only
// action that mutates engine state.
func (h *TabsHandler) Keypress(c *gin.Context) {
	var req dto.KeypressRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resolved := keymap.Resolve(keymap.KeyEvent{
		Key:           req.Key,
		TypingInInput: req.TypingInInput,
		FocusField:    req.FocusField,
	})
	if resolved.Action == keymap.ActionSwitchTab {
		if err := h.manager.SwitchToTab(resolved.Tab); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, dto.KeypressResponse{
		Action:      resolved.Action.String(),
		Tab:         resolved.Tab,
		ActiveTabID: h.manager.ActiveID(),
	})
}

// Shortcuts serves the static key-binding table.
func (h *TabsHandler) Shortcuts(c *gin.Context) {
	c.JSON(http.StatusOK, keymap.Bindings())
}

func (h *TabsHandler) respondTab(c *gin.Context, id int) {
	view, err := h.manager.Snapshot(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TabToResponse(view))
}
