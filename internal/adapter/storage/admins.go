package storage

import (
	"context"
	"fmt"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

const adminColumns = `id, email, password, name, role, created_at`

func (s *Store) AdminByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	const op = "Store.AdminByEmail"
	return s.findAdmin(ctx, op, `WHERE email = $1`, email)
}

func (s *Store) AdminByID(ctx context.Context, id string) (domain.AdminUser, error) {
	const op = "Store.AdminByID"
	return s.findAdmin(ctx, op, `WHERE id = $1`, id)
}

func (s *Store) findAdmin(
	ctx context.Context, op, where string, arg any,
) (domain.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + adminColumns + ` FROM admin_users ` + where + `;`

	var u domain.AdminUser
	err := s.sqldb.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		return domain.AdminUser{}, mapErr(op, err)
	}
	return u, nil
}

// BootstrapAdmin seeds the table with one account when it is empty.
func (s *Store) BootstrapAdmin(ctx context.Context, u domain.AdminUser) error {
	const op = "Store.BootstrapAdmin"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var count int
	err := s.sqldb.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_users;`).Scan(&count)
	if err != nil {
		return mapErr(op, err)
	}
	if count > 0 {
		return nil
	}

	if u.Role == "" {
		u.Role = domain.DefaultAdminRole
	}
	_, err = s.sqldb.ExecContext(ctx, `
		INSERT INTO admin_users (id, email, password, name, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING;`,
		uuid.NewString(), u.Email, u.PasswordHash, u.Name, u.Role,
	)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *Store) SetAdminPassword(ctx context.Context, email, passwordHash string) error {
	const op = "Store.SetAdminPassword"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.sqldb.ExecContext(ctx,
		`UPDATE admin_users SET password = $1 WHERE email = $2;`,
		passwordHash, email,
	)
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

func (s *Store) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "Store.DashboardStats"

	if err := ctx.Err(); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	var stats domain.DashboardStats

	// Revenue is the sum of list prices across the whole catalog, not
	// completed sales. The field names mirror the admin dashboard.
	err := s.sqldb.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active = true),
			COALESCE(SUM(price), 0)
		FROM products;`,
	).Scan(&stats.TotalDresses, &stats.ActiveProducts, &stats.Revenue)
	if err != nil {
		return domain.DashboardStats{}, mapErr(op, err)
	}

	err = s.sqldb.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published')
		FROM blogs;`,
	).Scan(&stats.TotalBlogs, &stats.PublishedBlogs)
	if err != nil {
		return domain.DashboardStats{}, mapErr(op, err)
	}
	return stats, nil
}
