package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type customerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Customer, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting customers: %w", err)
	}

	args = append(args, filter.Limit(), filter.Offset())
	query := fmt.Sprintf(`
		SELECT id, name, phone, total_orders, total_spent,
			first_order_at, last_order_at, created_at, updated_at
		FROM customers %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	customers := make([]domain.Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error listing customers: %w", err)
	}

	return customers, total, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, total_orders, total_spent,
			first_order_at, last_order_at, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var c domain.Customer
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting customer: %w", err)
	}

	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO customers (id, name, phone, total_orders, total_spent, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, NOW(), NOW())
	`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Phone); err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}

	return nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name = $2, phone = $3, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Phone)
	if err != nil {
		return fmt.Errorf("error updating customer: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("customer %s not found", c.ID)
	}
	return nil
}
