package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/event"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/ledger"
)

type CheckoutState uint8

const (
	StateIdle CheckoutState = iota
	StateValidating
	StateReserving
	StateCommitting
	StateCommitted
	StateRejected
	StateFailed
)

func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateReserving:
		return "reserving"
	case StateCommitting:
		return "committing"
	case StateCommitted:
		return "committed"
	case StateRejected:
		return "rejected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type ICheckoutService interface {
	Commit(ctx context.Context, cart *model.Cart, payment model.PaymentMethod) (*model.Receipt, error)
}

// CheckoutService turns a cart into a committed order. The reserve-all,
// allocate-id, append sequence of one checkout runs under a single mutex so
// no concurrent checkout can observe or interleave with its intermediate
// state. Individual catalog reservations are atomic on their own; the mutex
// makes the multi-line sequence one logical transaction.
type CheckoutService struct {
	mu        sync.Mutex
	catalog   catalog.IStore
	ledger    ledger.ILedger
	publisher event.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewCheckoutService(catalogStore catalog.IStore, orderLedger ledger.ILedger, publisher event.Publisher, logger zerolog.Logger) *CheckoutService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &CheckoutService{
		catalog:   catalogStore,
		ledger:    orderLedger,
		publisher: publisher,
		logger:    logger.With().Str("component", "checkout").Logger(),
		now:       time.Now,
	}
}

// reservation is one staged stock decrement plus the catalog snapshot taken
// at reservation time. Name and price on the order line come from here, not
// from the cart's captured display price.
type reservation struct {
	productID string
	quantity  int
	name      string
	unitPrice decimal.Decimal
}

// Commit validates the cart, reserves stock line by line in ascending
// product-id order, allocates one order id and appends all lines as one
// batch. Any failure before the append leaves catalog and ledger exactly as
// they were; a failed append rolls the reservations back.
func (s *CheckoutService) Commit(ctx context.Context, cart *model.Cart, payment model.PaymentMethod) (*model.Receipt, error) {
	if cart.Empty() {
		return nil, model.ErrCartEmpty
	}
	if !payment.Valid() {
		return nil, &model.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := cart.Lines()

	// Validating: every referenced product must exist before any stock is
	// touched.
	s.logState(StateValidating, 0)
	for _, item := range items {
		if _, err := s.catalog.Get(ctx, item.ProductID); err != nil {
			s.logState(StateRejected, 0)
			return nil, err
		}
	}

	// Reserving: evaluated against live stock, so quantity sold out since
	// the cart was built is rejected here. Partial reservations of this
	// attempt are rolled back before reporting.
	s.logState(StateReserving, 0)
	staged := make([]reservation, 0, len(items))
	for _, item := range items {
		product, err := s.catalog.ReserveStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.rollback(ctx, staged)
			if IsRejection(err) {
				s.logState(StateRejected, 0)
			} else {
				s.logState(StateFailed, 0)
			}
			return nil, err
		}
		staged = append(staged, reservation{
			productID: item.ProductID,
			quantity:  item.Quantity,
			name:      product.Name,
			unitPrice: product.Price,
		})
	}

	// Committing: from here the checkout runs to completion or explicit
	// rollback, never silent abandonment.
	orderID := s.ledger.NextOrderID()
	s.logState(StateCommitting, orderID)
	committedAt := s.now()
	amount := decimal.NewFromInt(0)
	lines := make([]model.OrderLine, 0, len(staged))
	for _, res := range staged {
		total := res.unitPrice.Mul(decimal.NewFromInt(int64(res.quantity)))
		amount = amount.Add(total)
		lines = append(lines, model.OrderLine{
			OrderID:       orderID,
			ProductName:   res.name,
			UnitPrice:     res.unitPrice,
			Quantity:      res.quantity,
			Total:         total,
			Date:          committedAt,
			PaymentMethod: payment,
		})
	}

	if err := s.ledger.Append(ctx, orderID, lines); err != nil {
		s.rollback(ctx, staged)
		s.logState(StateFailed, orderID)
		return nil, err
	}

	s.logState(StateCommitted, orderID)
	cart.Clear()

	s.publish(orderID, lines, amount)

	return &model.Receipt{
		OrderID: orderID,
		Lines:   lines,
		Amount:  amount,
	}, nil
}

// rollback restores this checkout's own reservations, newest first. It
// never touches other checkouts' state. Release failures are logged and
// skipped so the remaining reservations still get restored.
func (s *CheckoutService) rollback(ctx context.Context, staged []reservation) {
	for i := len(staged) - 1; i >= 0; i-- {
		res := staged[i]
		if err := s.catalog.ReleaseStock(ctx, res.productID, res.quantity); err != nil {
			s.logger.Error().Err(err).
				Str("product_id", res.productID).
				Int("quantity", res.quantity).
				Msg("failed to release reserved stock")
		}
	}
}

// publish emits the committed-order event off the commit path. Publishing
// is best effort and never changes the checkout outcome.
func (s *CheckoutService) publish(orderID int64, lines []model.OrderLine, amount decimal.Decimal) {
	evt := event.OrderCommittedEvent{
		EventID:   uuid.New().String(),
		EventType: event.OrderCommittedEventName,
		OrderID:   orderID,
		Lines:     lines,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishOrderCommitted(ctx, evt); err != nil {
			s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to publish order event")
		}
	}()
}

func (s *CheckoutService) logState(state CheckoutState, orderID int64) {
	e := s.logger.Debug().Str("state", state.String())
	if orderID > 0 {
		e = e.Int64("order_id", orderID)
	}
	e.Msg("checkout state")
}

// IsRejection reports whether the error is a business rejection the caller
// may retry with an adjusted cart, as opposed to a fatal persistence
// failure that needs operator attention.
func IsRejection(err error) bool {
	var validationErr *model.ValidationError
	var stockErr *model.InsufficientStockError
	switch {
	case errors.Is(err, model.ErrCartEmpty),
		errors.Is(err, model.ErrProductNotFound),
		errors.As(err, &validationErr),
		errors.As(err, &stockErr):
		return true
	default:
		return false
	}
}

var _ ICheckoutService = (*CheckoutService)(nil)
