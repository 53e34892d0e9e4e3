package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JackHouche/cbdproject/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrProductNotFound = errors.New("product not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

const productColumns = `id, name, slug, description, category, price_cents, original_price_cents,
	stock, rating, review_count, active, featured, promo, created_at, updated_at`

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY created_at DESC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns)
	return r.getOne(ctx, query, id)
}

func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE slug = ?`, productColumns)
	return r.getOne(ctx, query, slug)
}

func (r *Repository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (id, name, slug, description, category, price_cents, original_price_cents,
	          stock, rating, review_count, active, featured, promo, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Category,
		int64(p.Price), centsPtr(p.OriginalPrice),
		p.Stock, p.Rating, p.ReviewCount,
		p.Active, p.Featured, p.Promo,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()

	query := `UPDATE products SET name = ?, slug = ?, description = ?, category = ?,
	          price_cents = ?, original_price_cents = ?, stock = ?, rating = ?, review_count = ?,
	          active = ?, featured = ?, promo = ?, updated_at = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Slug, p.Description, p.Category,
		int64(p.Price), centsPtr(p.OriginalPrice),
		p.Stock, p.Rating, p.ReviewCount,
		p.Active, p.Featured, p.Promo,
		p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) UpdateStock(ctx context.Context, id string, stock int) error {
	query := `UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, stock, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var p domain.Product
	var price int64
	var originalPrice sql.NullInt64

	err := s.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category,
		&price, &originalPrice,
		&p.Stock, &p.Rating, &p.ReviewCount,
		&p.Active, &p.Featured, &p.Promo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}

	p.Price = domain.Cents(price)
	if originalPrice.Valid {
		op := domain.Cents(originalPrice.Int64)
		p.OriginalPrice = &op
	}
	return p, nil
}

func centsPtr(c *domain.Cents) interface{} {
	if c == nil {
		return nil
	}
	return int64(*c)
}
