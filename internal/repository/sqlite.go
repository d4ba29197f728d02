package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteProductRepository stores the catalog in a SQLite database.
type SQLiteProductRepository struct {
	db *sql.DB
}

// NewSQLiteProductRepository opens (or creates) the database at path and
// applies pending migrations.
func NewSQLiteProductRepository(path string) (*SQLiteProductRepository, error) {
	slog.Info("initializing sqlite catalog", "path", path)

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteProductRepository{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

const selectProducts = `
	SELECT id, name, category, base_price, dynamic_price, carbon_score, is_perishable, image
	FROM products`

// GetAll returns every product ordered by ID.
func (r *SQLiteProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProducts+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetByID returns a product by its ID
func (r *SQLiteProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, selectProducts+` WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts products, overwriting rows with the same ID.
func (r *SQLiteProductRepository) Upsert(ctx context.Context, products []models.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, category, base_price, dynamic_price, carbon_score, is_perishable, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			base_price = excluded.base_price,
			dynamic_price = excluded.dynamic_price,
			carbon_score = excluded.carbon_score,
			is_perishable = excluded.is_perishable,
			image = excluded.image
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Category,
			p.BasePrice.String(), p.DynamicPrice, p.CarbonScore,
			p.IsPerishable, p.Image,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Close releases the database handle.
func (r *SQLiteProductRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (models.Product, error) {
	var p models.Product
	err := s.Scan(
		&p.ID, &p.Name, &p.Category,
		&p.BasePrice, &p.DynamicPrice, &p.CarbonScore,
		&p.IsPerishable, &p.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}
