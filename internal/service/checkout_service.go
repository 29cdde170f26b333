package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chihoangvnn/sss-sub001/internal/cart"
	"github.com/chihoangvnn/sss-sub001/internal/dto"
	"github.com/chihoangvnn/sss-sub001/internal/infra"
	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/repository"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
	"github.com/chihoangvnn/sss-sub001/internal/worker"
)

// CheckoutService submits a tab's cart to the order service and drives the
// draft → pending → empty tail of the tab lifecycle. Submission failure is
// always recoverable: the tab stays draft with its cart intact and the
// cashier retries without re-entering items.
type CheckoutService interface {
	Checkout(ctx context.Context, tabID int, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	// Complete finishes a pending checkout (payment settled): marks the
	// order completed and resets the tab.
	Complete(ctx context.Context, tabID int) error
}

type checkoutService struct {
	tabs             *tabs.Manager
	orders           repository.OrderRepository
	breaker          *infra.CircuitBreaker
	dispatcher       *worker.Dispatcher
	autoPrintDefault bool
}

func NewCheckoutService(
	manager *tabs.Manager,
	orders repository.OrderRepository,
	breaker *infra.CircuitBreaker,
	dispatcher *worker.Dispatcher,
	autoPrintDefault bool,
) CheckoutService {
	return &checkoutService{
		tabs:             manager,
		orders:           orders,
		breaker:          breaker,
		dispatcher:       dispatcher,
		autoPrintDefault: autoPrintDefault,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, tabID int, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	snap, err := s.tabs.Snapshot(tabID)
	if err != nil {
		return nil, err
	}
	switch snap.Status {
	case tabs.StatusEmpty:
		return nil, errors.New("tab has nothing to check out")
	case tabs.StatusPending:
		return nil, errors.New("tab already has a submitted order")
	}
	if len(snap.Lines) == 0 {
		// Customer selected but no items — still nothing to submit.
		return nil, errors.New("tab has nothing to check out")
	}

	autoPrint := s.autoPrintDefault
	if req.AutoPrint != nil {
		autoPrint = *req.AutoPrint
	}

	order := model.Order{
		TabID:     tabID,
		Total:     snap.Total,
		Status:    "pending",
		AutoPrint: autoPrint,
	}
	if snap.Customer != nil {
		id := snap.Customer.ID
		order.CustomerID = &id
	}
	for i := range snap.Lines {
		l := &snap.Lines[i]
		order.Items = append(order.Items, model.OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}

	submitErr := s.breaker.Execute(func() error {
		return s.orders.Create(ctx, &order)
	})
	if submitErr != nil {
		// Tab untouched: stays draft, cart intact, retry is safe.
		return nil, fmt.Errorf("%w: %s", cart.ErrOrderSubmissionFailed, submitErr)
	}

	if err := s.tabs.MarkPending(tabID, order.ID); err != nil {
		// The tab changed between snapshot and submission (cleared or
		// re-submitted from another input path). Last applicable result
		// wins — the order exists, the tab state stays as it is now.
		log.Warn().Err(err).Int("tab", tabID).Str("order_id", order.ID.String()).
			Msg("order submitted but tab no longer draft, leaving tab state alone")
	}

	if autoPrint && s.dispatcher != nil {
		job := worker.PrintJob{
			OrderID: order.ID.String(),
			TabID:   tabID,
			Total:   snap.Total.StringFixed(2),
		}
		if err := s.dispatcher.EnqueuePrint(ctx, job); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("print job enqueue failed")
		}
	}

	return &dto.CheckoutResponse{
		OrderID: order.ID.String(),
		TabID:   tabID,
		Status:  string(tabs.StatusPending),
		Total:   snap.Total,
	}, nil
}

func (s *checkoutService) Complete(ctx context.Context, tabID int) error {
	snap, err := s.tabs.Snapshot(tabID)
	if err != nil {
		return err
	}
	if snap.Status != tabs.StatusPending {
		return fmt.Errorf("tab %d has no pending order", tabID)
	}
	if snap.OrderID != nil {
		if err := s.orders.UpdateStatus(ctx, *snap.OrderID, "completed"); err != nil {
			return err
		}
	}
	return s.tabs.ClearTab(tabID)
}
