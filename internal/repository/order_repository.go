package repository

import (
	"context"
	"fmt"

	"gec-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts the order header within the provided transaction and
// captures the store-generated identifier on the order.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (customer_email, customer_name, branch, delivery_date, shared_link, remarks, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		order.CustomerEmail,
		order.CustomerName,
		order.Branch,
		order.DeliveryDate,
		order.SharedLink,
		order.Remarks,
		order.TotalHours,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_email", order.CustomerEmail).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order header created")

	return nil
}

// CreateOrderItems inserts line items within the provided transaction. Items
// require the header's generated identifier, so callers must insert the
// header first. Input order is preserved.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, hours)
		VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.ProductID, item.Quantity, item.Hours)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Int64("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created")

	return nil
}

// GetAll retrieves all order headers, newest first with a stable identifier
// tie-break.
func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT id, customer_email, customer_name, branch, delivery_date, shared_link, remarks, total_hours, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID,
			&o.CustomerEmail,
			&o.CustomerName,
			&o.Branch,
			&o.DeliveryDate,
			&o.SharedLink,
			&o.Remarks,
			&o.TotalHours,
			&o.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetItemDetails retrieves line items for the given orders joined with their
// product title and image columns, grouped by order identifier. Items within
// an order come back in insertion order.
func (r *orderRepository) GetItemDetails(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItemDetail, error) {
	details := make(map[int64][]model.OrderItemDetail, len(orderIDs))
	if len(orderIDs) == 0 {
		return details, nil
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.title, oi.quantity, oi.hours, p.image_data, p.image_content_type
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d model.OrderItemDetail
		err := rows.Scan(
			&d.OrderItemID,
			&d.OrderID,
			&d.ProductID,
			&d.ProductTitle,
			&d.Quantity,
			&d.Hours,
			&d.ImageData,
			&d.ImageContentType,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		details[d.OrderID] = append(details[d.OrderID], d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return details, nil
}
