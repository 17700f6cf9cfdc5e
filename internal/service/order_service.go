package service

import (
	"context"
	"strings"
	"time"

	"gec-catalog/internal/model"
	"gec-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// ValidateOrder checks required fields and item shape. It is pure: a failure
// here guarantees the store was never touched. On success it returns the
// parsed delivery date.
func ValidateOrder(req *model.OrderRequest) (time.Time, error) {
	if req == nil {
		return time.Time{}, model.NewValidationError("order request is required")
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return time.Time{}, model.NewValidationError("customerEmail is required")
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return time.Time{}, model.NewValidationError("customerName is required")
	}

	if strings.TrimSpace(req.Branch) == "" {
		return time.Time{}, model.NewValidationError("branch is required")
	}

	if strings.TrimSpace(req.DeliveryDate) == "" {
		return time.Time{}, model.NewValidationError("deliveryDate is required")
	}

	deliveryDate, err := time.Parse(model.DeliveryDateFormat, strings.TrimSpace(req.DeliveryDate))
	if err != nil {
		return time.Time{}, model.NewValidationError("deliveryDate must be a date in the form %s", model.DeliveryDateFormat)
	}

	if len(req.Items) == 0 {
		return time.Time{}, model.NewValidationError("items must be a non-empty array")
	}

	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return time.Time{}, model.NewValidationError("item %d: productId is required", i)
		}
		if item.Quantity <= 0 {
			return time.Time{}, model.NewValidationError("item %d: quantity must be positive", i)
		}
		if item.Hours < 0 {
			return time.Time{}, model.NewValidationError("item %d: hours cannot be negative", i)
		}
	}

	return deliveryDate, nil
}

// CreateOrder validates the request, computes the derived total and performs
// exactly one logical write: the header insert, then one item insert per
// line, committed together or not at all.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	deliveryDate, err := ValidateOrder(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order validation failed")
		return nil, err
	}

	totalHours := model.TotalHours(req.Items)

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, model.NewPersistenceError("begin order transaction", err)
	}

	// Roll the whole scope back on any failure so no partial order ever
	// becomes visible to readers.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := &model.Order{
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Branch:        strings.TrimSpace(req.Branch),
		DeliveryDate:  deliveryDate,
		SharedLink:    req.SharedLink,
		Remarks:       req.Remarks,
		TotalHours:    totalHours,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert order header")
		return nil, model.NewPersistenceError("insert order header", err)
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Hours:     item.Hours,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to insert order items")
		return nil, model.NewPersistenceError("insert order items", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit order")
		return nil, model.NewPersistenceError("commit order", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int("item_count", len(items)).
		Int("total_hours", totalHours).
		Msg("order placed")

	return order, nil
}

// ListOrders retrieves all orders newest first, each with its line items
// enriched with product titles and image data URLs.
func (s *orderService) ListOrders(ctx context.Context) ([]model.OrderView, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, model.NewPersistenceError("list orders", err)
	}

	orderIDs := make([]int64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	details, err := s.orderRepo.GetItemDetails(ctx, orderIDs)
	if err != nil {
		return nil, model.NewPersistenceError("list order items", err)
	}

	views := make([]model.OrderView, len(orders))
	for i, o := range orders {
		lines := make([]model.OrderLine, 0, len(details[o.ID]))
		for _, d := range details[o.ID] {
			lines = append(lines, model.OrderLine{
				OrderItemID:  d.OrderItemID,
				ProductID:    d.ProductID,
				ProductTitle: d.ProductTitle,
				Quantity:     d.Quantity,
				Hours:        d.Hours,
				ImageURL:     model.ImageDataURL(d.ImageData, d.ImageContentType),
			})
		}

		views[i] = model.OrderView{
			ID:            o.ID,
			CustomerEmail: o.CustomerEmail,
			CustomerName:  o.CustomerName,
			Branch:        o.Branch,
			DeliveryDate:  o.DeliveryDate.Format(model.DeliveryDateFormat),
			SharedLink:    o.SharedLink,
			Remarks:       o.Remarks,
			TotalHours:    o.TotalHours,
			CreatedAt:     o.CreatedAt,
			Items:         lines,
		}
	}

	return views, nil
}
