package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

// Store persists the ledger in Postgres. Ordering comes from the seq column,
// so the most recently prepended sale is always listed first.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectSaleColumns = `
	s.id, s.code, s.issued_at, s.customer, s.discount, s.total, s.status, s.method
`

func scanSale(s scanner) (*sale.Sale, error) {
	var sl sale.Sale

	var statusStr, methodStr string

	if err := s.Scan(
		&sl.ID, &sl.Code, &sl.IssuedAt, &sl.Customer, &sl.Discount, &sl.Total, &statusStr, &methodStr,
	); err != nil {
		return nil, err
	}

	sl.Status = sale.Status(statusStr)
	sl.Method = sale.PaymentMethod(methodStr)

	return &sl, nil
}

func (s *Store) PrependSale(ctx context.Context, sl *sale.Sale) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	saleQuery := `
		INSERT INTO sales (id, code, issued_at, customer, discount, total, status, method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	if _, err := dbTx.ExecContext(ctx, saleQuery,
		sl.ID,
		sl.Code,
		sl.IssuedAt,
		sl.Customer,
		sl.Discount,
		sl.Total,
		sl.Status,
		sl.Method,
	); err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, position, line_id, product_id, product_name, price, qty, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i, li := range sl.Items {
		if _, err := dbTx.ExecContext(ctx, itemQuery,
			sl.ID, i, li.ID, li.ProductID, li.ProductName, li.Price, li.Qty, li.Subtotal,
		); err != nil {
			return fmt.Errorf("inserting line item %s: %w", li.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing sale: %w", err)
	}

	return nil
}

func (s *Store) ListSales(ctx context.Context) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales s ORDER BY s.seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale

	byID := make(map[uuid.UUID]*sale.Sale)

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
		byID[sl.ID] = sl
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales: %w", err)
	}

	if err := s.loadItems(ctx, byID); err != nil {
		return nil, err
	}

	return sales, nil
}

func (s *Store) GetSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales s WHERE s.id = $1`

	sl, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("getting sale: %w", err)
	}

	if err := s.loadItems(ctx, map[uuid.UUID]*sale.Sale{id: sl}); err != nil {
		return nil, err
	}

	return sl, nil
}

func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sales WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking invoice code: %w", err)
	}

	return exists, nil
}

// loadItems attaches line items, in cart order, to the given sales.
func (s *Store) loadItems(ctx context.Context, byID map[uuid.UUID]*sale.Sale) error {
	if len(byID) == 0 {
		return nil
	}

	query := `
		SELECT sale_id, line_id, product_id, product_name, price, qty, subtotal
		FROM sale_items
		ORDER BY sale_id, position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saleID uuid.UUID

		var li sale.LineItem

		if err := rows.Scan(&saleID, &li.ID, &li.ProductID, &li.ProductName, &li.Price, &li.Qty, &li.Subtotal); err != nil {
			return fmt.Errorf("scanning line item: %w", err)
		}

		if sl, ok := byID[saleID]; ok {
			sl.Items = append(sl.Items, li)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating line items: %w", err)
	}

	return nil
}
