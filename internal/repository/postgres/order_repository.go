package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(" AND o.customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders o "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting orders: %w", err)
	}

	args = append(args, filter.Limit(), filter.Offset())
	query := fmt.Sprintf(`
		SELECT o.id, o.order_number, o.customer_id, c.name AS customer_name,
			c.phone AS customer_phone, o.status, o.total_amount,
			o.delivery_date, o.notes, o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		%s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	orders := make([]domain.Order, 0)
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error listing orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT o.id, o.order_number, o.customer_id, c.name AS customer_name,
			c.phone AS customer_phone, o.status, o.total_amount,
			o.delivery_date, o.notes, o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`

	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, recipe_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`
	items := make([]domain.OrderItem, 0)
	if err := r.db.SelectContext(ctx, &items, itemsQuery, id); err != nil {
		return nil, fmt.Errorf("error loading order items: %w", err)
	}
	order.Items = items

	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber()
	}
	if order.Status == "" {
		order.Status = domain.OrderPending
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO orders (
				id, order_number, customer_id, status, total_amount,
				delivery_date, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		`
		if _, err := tx.ExecContext(ctx, query,
			order.ID, order.OrderNumber, order.CustomerID, order.Status,
			order.TotalAmount, nullableTime(order.DeliveryDate), order.Notes,
		); err != nil {
			return fmt.Errorf("error creating order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, recipe_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for i := range order.Items {
			item := &order.Items[i]
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			item.OrderID = order.ID
			if _, err := tx.ExecContext(ctx, itemQuery,
				item.ID, item.OrderID, item.RecipeID, item.Name,
				item.Quantity, item.UnitPrice,
			); err != nil {
				return fmt.Errorf("error inserting order item: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders SET
			total_amount = $2, delivery_date = $3, notes = $4,
			updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		order.ID, order.TotalAmount, nullableTime(order.DeliveryDate), order.Notes,
	)
	if err != nil {
		return fmt.Errorf("error updating order: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("order %s not found", order.ID)
	}
	return nil
}

// UpdateStatus transitions an order and applies customer rollups in the
// same transaction: delivery increments total_orders/total_spent and the
// order timestamps; cancelling a delivered order reverses the counters.
func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var current struct {
			CustomerID  string  `db:"customer_id"`
			Status      string  `db:"status"`
			TotalAmount float64 `db:"total_amount"`
		}
		if err := tx.GetContext(ctx, &current,
			`SELECT customer_id, status, total_amount FROM orders WHERE id = $1 FOR UPDATE`, id,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("order %s not found", id)
			}
			return fmt.Errorf("error loading order: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status,
		); err != nil {
			return fmt.Errorf("error updating order status: %w", err)
		}

		switch {
		case status == domain.OrderDelivered && current.Status != domain.OrderDelivered:
			query := `
				UPDATE customers SET
					total_orders = total_orders + 1,
					total_spent = total_spent + $2,
					last_order_at = NOW(),
					first_order_at = COALESCE(first_order_at, NOW()),
					updated_at = NOW()
				WHERE id = $1
			`
			if _, err := tx.ExecContext(ctx, query, current.CustomerID, current.TotalAmount); err != nil {
				return fmt.Errorf("error applying customer rollup: %w", err)
			}

		case status == domain.OrderCancelled && current.Status == domain.OrderDelivered:
			query := `
				UPDATE customers SET
					total_orders = GREATEST(total_orders - 1, 0),
					total_spent = GREATEST(total_spent - $2, 0),
					updated_at = NOW()
				WHERE id = $1
			`
			if _, err := tx.ExecContext(ctx, query, current.CustomerID, current.TotalAmount); err != nil {
				return fmt.Errorf("error reversing customer rollup: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting order items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting order: %w", err)
		}
		return nil
	})
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8])
}
