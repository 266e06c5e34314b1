package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

const productColumns = `
	id, name, category, description, price, original_price, discount_price,
	stock, is_active, specifications, supplier, rating, reviews,
	on_sale, savings, created_at, updated_at`

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Store.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + productColumns + `
		FROM products ORDER BY created_at DESC;`

	rows, err := s.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	var products []domain.Product
	byID := make(map[string]int)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapErr(op, err)
		}
		byID[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(op, err)
	}

	imgQuery := `
		SELECT product_id, image_url, image_path
		FROM product_images ORDER BY product_id, display_order;`

	imgRows, err := s.sqldb.QueryContext(ctx, imgQuery)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var productID string
		var img domain.ProductImage
		if err := imgRows.Scan(&productID, &img.URL, &img.Path); err != nil {
			return nil, mapErr(op, err)
		}
		if i, ok := byID[productID]; ok {
			products[i].Images = append(products[i].Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, mapErr(op, err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	const op = "Store.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	p, err := getProduct(ctx, s.sqldb, id)
	if err != nil {
		return domain.Product{}, mapErr(op, err)
	}
	return p, nil
}

func (s *Store) CreateProduct(
	ctx context.Context, p domain.Product,
) (created domain.Product, opErr error) {
	const op = "Store.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer finishTx(op, tx, &opErr)

	p.ApplyDefaults()
	p.ID = uuid.NewString()
	specs, _ := json.Marshal(p.Specifications)

	query := `
		INSERT INTO products (
			id, name, category, description, price, original_price,
			discount_price, stock, is_active, specifications, supplier,
			rating, reviews, on_sale, savings
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at;`

	err = tx.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Category, p.Description, p.Price, p.OriginalPrice,
		p.DiscountPrice, p.Stock, p.IsActive, string(specs), p.Supplier,
		p.Rating, p.Reviews, p.OnSale, p.Savings,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, mapErr(op, err)
	}

	if err := insertImages(ctx, tx, p.ID, p.Images); err != nil {
		return domain.Product{}, mapErr(op, err)
	}
	return p, nil
}

func (s *Store) UpdateProduct(
	ctx context.Context, id string, patch domain.ProductPatch,
) (updated domain.Product, opErr error) {
	const op = "Store.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer finishTx(op, tx, &opErr)

	var specs *string
	if patch.Specifications != nil {
		b, _ := json.Marshal(patch.Specifications)
		js := string(b)
		specs = &js
	}

	query := `
		UPDATE products SET
			name = COALESCE($1, name),
			category = COALESCE($2, category),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			original_price = COALESCE($5, original_price),
			discount_price = COALESCE($6, discount_price),
			stock = COALESCE($7, stock),
			is_active = COALESCE($8, is_active),
			specifications = COALESCE($9::jsonb, specifications),
			supplier = COALESCE($10, supplier),
			rating = COALESCE($11, rating),
			reviews = COALESCE($12, reviews),
			on_sale = COALESCE($13, on_sale),
			savings = COALESCE($14, savings),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $15
		RETURNING id;`

	err = tx.QueryRowContext(ctx, query,
		patch.Name, patch.Category, patch.Description, patch.Price,
		patch.OriginalPrice, patch.DiscountPrice, patch.Stock, patch.IsActive,
		specs, patch.Supplier, patch.Rating, patch.Reviews, patch.OnSale,
		patch.Savings, id,
	).Scan(&id)
	if err != nil {
		return domain.Product{}, mapErr(op, err)
	}

	if patch.Images != nil {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM product_images WHERE product_id = $1;`, id)
		if err != nil {
			return domain.Product{}, mapErr(op, err)
		}
		if err := insertImages(ctx, tx, id, *patch.Images); err != nil {
			return domain.Product{}, mapErr(op, err)
		}
	}

	// Read back within the same transaction so the merged row and its
	// image rows are observed together.
	p, err := getProduct(ctx, tx, id)
	if err != nil {
		return domain.Product{}, mapErr(op, err)
	}
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	const op = "Store.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Image rows go with the product via ON DELETE CASCADE.
	res, err := s.sqldb.ExecContext(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return mapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// querier is satisfied by both SQLDB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProduct(ctx context.Context, q querier, id string) (domain.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products WHERE id = $1;`

	p, err := scanProduct(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Product{}, err
	}

	imgQuery := `
		SELECT image_url, image_path
		FROM product_images WHERE product_id = $1 ORDER BY display_order;`

	rows, err := q.QueryContext(ctx, imgQuery, id)
	if err != nil {
		return domain.Product{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.URL, &img.Path); err != nil {
			return domain.Product{}, err
		}
		p.Images = append(p.Images, img)
	}
	if err := rows.Err(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func insertImages(ctx context.Context, q querier, productID string, images []domain.ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, image_url, image_path, display_order)
		VALUES ($1, $2, $3, $4);`

	for i, img := range images {
		if _, err := q.ExecContext(ctx, query, productID, img.URL, img.Path, i); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var specs string
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.Price,
		&p.OriginalPrice, &p.DiscountPrice, &p.Stock, &p.IsActive, &specs,
		&p.Supplier, &p.Rating, &p.Reviews, &p.OnSale, &p.Savings,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal([]byte(specs), &p.Specifications); err != nil {
		return domain.Product{}, err
	}
	p.Images = []domain.ProductImage{}
	return p, nil
}
