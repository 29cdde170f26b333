// Package tabs owns the fixed set of concurrent draft orders. The Manager is
// the single write path for every cart, so tab isolation and per-tab
// operation ordering are enforced in exactly one place.
package tabs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chihoangvnn/sss-sub001/internal/cart"
	"github.com/chihoangvnn/sss-sub001/internal/model"
)

// TabCount is fixed: exactly 5 tabs, shortcut keys 1..5. Not configurable.
const TabCount = 5

// Status is the per-tab lifecycle state.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
)

// ErrNoSuchTab is returned for tab ids outside 1..TabCount.
var ErrNoSuchTab = errors.New("no such tab")

// CustomerRef is the opaque customer selection stored on a tab.
type CustomerRef struct {
	ID    uuid.UUID
	Name  string
	Phone string
}

type tab struct {
	id       int
	label    string
	status   Status
	cart     *cart.Cart
	customer *CustomerRef
	orderID  *uuid.UUID
}

// refreshStatus derives empty/draft from cart + customer. A pending tab keeps
// its status until cleared — submitting an order pins it regardless of what
// the cart looks like afterwards.
func (t *tab) refreshStatus() {
	if t.status == StatusPending {
		return
	}
	if t.cart.IsEmpty() && t.customer == nil {
		t.status = StatusEmpty
	} else {
		t.status = StatusDraft
	}
}

func (t *tab) reset() {
	t.cart.Clear()
	t.customer = nil
	t.orderID = nil
	t.status = StatusEmpty
}

// Manager holds the five tabs and the active-tab pointer. Construct one per
// register session and inject it; there is no package-level instance.
type Manager struct {
	mu       sync.Mutex
	tabs     [TabCount]*tab
	activeID int
}

func NewManager() *Manager {
	m := &Manager{activeID: 1}
	for i := range m.tabs {
		m.tabs[i] = &tab{
			id:     i + 1,
			label:  fmt.Sprintf("Đơn %d", i+1),
			status: StatusEmpty,
			cart:   cart.New(),
		}
	}
	return m
}

func (m *Manager) tab(id int) (*tab, error) {
	if id < 1 || id > TabCount {
		return nil, ErrNoSuchTab
	}
	return m.tabs[id-1], nil
}

// SwitchToTab changes only the active-tab pointer; no cart is touched.
func (m *Manager) SwitchToTab(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.tab(id); err != nil {
		return err
	}
	m.activeID = id
	return nil
}

// ActiveID returns the currently active tab id.
func (m *Manager) ActiveID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// FindEmptyTab returns the lowest-indexed empty tab id, or 0 when every tab
// is occupied.
func (m *Manager) FindEmptyTab() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tabs {
		if t.status == StatusEmpty {
			return t.id
		}
	}
	return 0
}

// AddToCart adds (or increments) a product on one tab. A zero qty means the
// policy's default single-add increment.
func (m *Manager) AddToCart(tabID int, p model.Product, qty decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return err
	}
	if err := t.cart.AddOrIncrement(p, qty); err != nil {
		return err
	}
	t.refreshStatus()
	return nil
}

// SetQuantity replaces a line quantity on one tab; below-floor quantities
// remove the line (see cart.SetQuantity).
func (m *Manager) SetQuantity(tabID int, productID uuid.UUID, qty decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return err
	}
	if err := t.cart.SetQuantity(productID, qty); err != nil {
		return err
	}
	t.refreshStatus()
	return nil
}

// RemoveLine deletes one product line from a tab.
func (m *Manager) RemoveLine(tabID int, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return err
	}
	t.cart.Remove(productID)
	t.refreshStatus()
	return nil
}

// SetCustomer attaches (or, with nil, detaches) the customer selection.
func (m *Manager) SetCustomer(tabID int, c *CustomerRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return err
	}
	if c != nil {
		cp := *c
		t.customer = &cp
	} else {
		t.customer = nil
	}
	t.refreshStatus()
	return nil
}

// DuplicateTab copies src's cart and customer into dst. dst must currently be
// empty; otherwise nothing changes and ErrDuplicateTargetNotEmpty is
// reported. The copy is deep — later edits on either tab stay isolated.
func (m *Manager) DuplicateTab(srcID, dstID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, err := m.tab(srcID)
	if err != nil {
		return err
	}
	dst, err := m.tab(dstID)
	if err != nil {
		return err
	}
	if dst.status != StatusEmpty {
		return cart.ErrDuplicateTargetNotEmpty
	}
	dst.cart = src.cart.Clone()
	if src.customer != nil {
		cp := *src.customer
		dst.customer = &cp
	}
	dst.refreshStatus()
	return nil
}

// ClearTab resets one tab to empty. Works on pending tabs too — the
// confirmation for abandoning a submitted order is a UI precondition, not a
// manager guard.
func (m *Manager) ClearTab(tabID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return err
	}
	t.reset()
	return nil
}

// ClearAllTabs resets every tab. Without force, pending tabs are skipped and
// counted so the UI can ask for confirmation; with force everything goes.
func (m *Manager) ClearAllTabs(force bool) (cleared, skippedPending int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tabs {
		if t.status == StatusPending && !force {
			skippedPending++
			continue
		}
		if t.status != StatusEmpty {
			cleared++
		}
		t.reset()
	}
	return cleared, skippedPending
}

// MarkPending records a submitted order on a tab. Only a draft tab can move
// to pending; the cart is intentionally kept until checkout completes.
func (m *Manager) MarkPending(tabID int, orderID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return err
	}
	if t.status != StatusDraft {
		return fmt.Errorf("tab %d is %s, not draft", tabID, t.status)
	}
	t.status = StatusPending
	t.orderID = &orderID
	return nil
}

// TabView is a read-only snapshot of one tab. Handlers render from views;
// nothing outside this package ever sees a live *cart.Cart.
type TabView struct {
	ID       int
	Label    string
	Status   Status
	Lines    []cart.Line
	Total    decimal.Decimal
	Customer *CustomerRef
	OrderID  *uuid.UUID
}

func (m *Manager) snapshotLocked(t *tab) TabView {
	v := TabView{
		ID:     t.id,
		Label:  t.label,
		Status: t.status,
		Lines:  t.cart.Lines(),
		Total:  t.cart.Total(),
	}
	if t.customer != nil {
		cp := *t.customer
		v.Customer = &cp
	}
	if t.orderID != nil {
		id := *t.orderID
		v.OrderID = &id
	}
	return v
}

// Snapshot returns a copy of one tab's observable state.
func (m *Manager) Snapshot(tabID int) (TabView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tab(tabID)
	if err != nil {
		return TabView{}, err
	}
	return m.snapshotLocked(t), nil
}

// Snapshots returns all five tabs in order.
func (m *Manager) Snapshots() []TabView {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TabView, 0, TabCount)
	for _, t := range m.tabs {
		out = append(out, m.snapshotLocked(t))
	}
	return out
}
