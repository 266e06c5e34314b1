package domain

import "time"

const DefaultAdminRole = "admin"

// AdminUser is created out-of-band (bootstrap seed or the passwd tool),
// never through the public API. PasswordHash is a bcrypt hash.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}

// DashboardStats are the admin dashboard aggregates. TotalDresses counts
// every product (legacy field name) and Revenue sums product list prices,
// not completed sales.
type DashboardStats struct {
	TotalDresses   int
	TotalBlogs     int
	ActiveProducts int
	PublishedBlogs int
	Revenue        float64
}
