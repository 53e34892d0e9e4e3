package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateCheckout = errors.New("order for this checkout already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	SaveOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

const orderColumns = `id, checkout_id, customer, items, subtotal_cents, shipping_cents, total_cents,
	currency, shipping_method, status, payment_status, payment_ref, tracking_number, notes,
	created_at, updated_at, confirmed_at, shipped_at, delivered_at, cancelled_at, paid_at`

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	customerJSON, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer info: %w", err)
	}

	query := `INSERT INTO orders (id, checkout_id, customer, items, subtotal_cents, shipping_cents, total_cents,
	          currency, shipping_method, status, payment_status, payment_ref, tracking_number, notes,
	          created_at, updated_at, confirmed_at, shipped_at, delivered_at, cancelled_at, paid_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID,
		order.CheckoutID,
		customerJSON,
		itemsJSON,
		int64(order.Pricing.Subtotal),
		int64(order.Pricing.Shipping),
		int64(order.Pricing.Total),
		order.Currency,
		string(order.ShippingMethod),
		string(order.Status),
		string(order.PaymentStatus),
		order.PaymentRef,
		order.TrackingNumber,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
		order.ConfirmedAt,
		order.ShippedAt,
		order.DeliveredAt,
		order.CancelledAt,
		order.PaidAt)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateCheckout
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *Repository) ListOrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE customer->>'email' = $1 ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, query, email)
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, query)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

// SaveOrder persists the mutable fields after a status or payment change.
// The item snapshot and pricing are immutable once created and are not
// written again.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET status = $1, payment_status = $2, payment_ref = $3, tracking_number = $4,
	          notes = $5, updated_at = $6, confirmed_at = $7, shipped_at = $8, delivered_at = $9,
	          cancelled_at = $10, paid_at = $11
	          WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		string(order.Status),
		string(order.PaymentStatus),
		order.PaymentRef,
		order.TrackingNumber,
		order.Notes,
		order.UpdatedAt,
		order.ConfirmedAt,
		order.ShippedAt,
		order.DeliveredAt,
		order.CancelledAt,
		order.PaidAt,
		order.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *Repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var order domain.Order
	var customerJSON, itemsJSON []byte
	var subtotal, shipping, total int64
	var shippingMethod, status, paymentStatus string

	err := s.Scan(
		&order.ID,
		&order.CheckoutID,
		&customerJSON,
		&itemsJSON,
		&subtotal,
		&shipping,
		&total,
		&order.Currency,
		&shippingMethod,
		&status,
		&paymentStatus,
		&order.PaymentRef,
		&order.TrackingNumber,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.ConfirmedAt,
		&order.ShippedAt,
		&order.DeliveredAt,
		&order.CancelledAt,
		&order.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(customerJSON, &order.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer info: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	order.Pricing = domain.OrderPricing{
		Subtotal: domain.Cents(subtotal),
		Shipping: domain.Cents(shipping),
		Total:    domain.Cents(total),
	}
	order.ShippingMethod = domain.ShippingMethod(shippingMethod)
	order.Status = domain.OrderStatus(status)
	order.PaymentStatus = domain.PaymentStatus(paymentStatus)

	return &order, nil
}
