package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

const defaultQueryLimit = 50

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) StoreProducts(
	ctx context.Context, vs []domain.Product,
) (storeErr error) {
	const op = "ProductsRepository.StoreProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit %w", op, err)
			}
			return
		}

		err := tx.Rollback()
		if err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (
			product_id, name, brand, category, description,
			price_amount, price_currency, sale_amount, on_sale,
			available_stock, tags, image_url, image_alt
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			price_amount = EXCLUDED.price_amount,
			price_currency = EXCLUDED.price_currency,
			sale_amount = EXCLUDED.sale_amount,
			on_sale = EXCLUDED.on_sale,
			available_stock = EXCLUDED.available_stock,
			tags = EXCLUDED.tags,
			image_url = EXCLUDED.image_url,
			image_alt = EXCLUDED.image_alt;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		tagsB, _ := json.Marshal(v.Tags)
		_, err := stmt.ExecContext(ctx,
			v.ProductID, v.Name, v.Brand, v.Category, v.Description,
			v.Price.Amount, v.Price.Currency, v.SalePrice.Amount, v.OnSale,
			v.AvailableStock, string(tagsB), v.Image.URL, v.Image.Alt,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

const productColumns = `
	product_id, name, brand, category, description,
	price_amount, price_currency, sale_amount, on_sale,
	available_stock, tags, image_url, image_alt`

func (r ProductsRepository) ProductByID(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "ProductsRepository.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE product_id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, productID)
	v, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r ProductsRepository) QueryProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, error) {
	const op = "ProductsRepository.QueryProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query, args := buildProductsQuery(q)

	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Product
	for rows.Next() {
		v, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func buildProductsQuery(q domain.ProductQuery) (string, []any) {
	query := `SELECT` + productColumns + ` FROM products WHERE 1=1`
	var args []any

	if q.Search != "" {
		args = append(args, q.Search+"%")
		query += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}

	if q.Category != "" {
		args = append(args, q.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}

	if q.OnSaleOnly {
		query += ` AND on_sale`
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)
	query += ` ORDER BY name ASC LIMIT $` + strconv.Itoa(len(args)) + `;`

	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var v domain.Product
	var tagsS string

	err := row.Scan(
		&v.ProductID, &v.Name, &v.Brand, &v.Category, &v.Description,
		&v.Price.Amount, &v.Price.Currency, &v.SalePrice.Amount, &v.OnSale,
		&v.AvailableStock, &tagsS, &v.Image.URL, &v.Image.Alt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	v.SalePrice.Currency = v.Price.Currency

	if err := json.Unmarshal([]byte(tagsS), &v.Tags); err != nil {
		return domain.Product{}, err
	}
	return v, nil
}
