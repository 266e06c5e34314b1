package filestore

import (
	"context"
	"fmt"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/google/uuid"
)

type (
	adminCollection struct {
		Users []adminRecord `json:"users"`
	}

	adminRecord struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Password  string    `json:"password"`
		Name      string    `json:"name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

func (s *FileStore) AdminByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	const op = "FileStore.AdminByEmail"
	return s.findAdmin(ctx, op, func(r adminRecord) bool { return r.Email == email })
}

func (s *FileStore) AdminByID(ctx context.Context, id string) (domain.AdminUser, error) {
	const op = "FileStore.AdminByID"
	return s.findAdmin(ctx, op, func(r adminRecord) bool { return r.ID == id })
}

func (s *FileStore) findAdmin(
	ctx context.Context, op string, match func(adminRecord) bool,
) (domain.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admins, err := s.readAdmins()
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range admins.Users {
		if match(r) {
			return r.toDomain(), nil
		}
	}
	return domain.AdminUser{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

// BootstrapAdmin seeds the collection with one account when it is empty.
// An already seeded collection is left untouched.
func (s *FileStore) BootstrapAdmin(ctx context.Context, u domain.AdminUser) error {
	const op = "FileStore.BootstrapAdmin"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admins, err := s.readAdmins()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(admins.Users) > 0 {
		return nil
	}

	if u.Role == "" {
		u.Role = domain.DefaultAdminRole
	}
	admins.Users = append(admins.Users, adminRecord{
		ID:        uuid.NewString(),
		Email:     u.Email,
		Password:  u.PasswordHash,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: s.now().UTC(),
	})
	if err := s.writeCollection(adminsFile, admins); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) SetAdminPassword(ctx context.Context, email, passwordHash string) error {
	const op = "FileStore.SetAdminPassword"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admins, err := s.readAdmins()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i, r := range admins.Users {
		if r.Email != email {
			continue
		}
		admins.Users[i].Password = passwordHash
		if err := s.writeCollection(adminsFile, admins); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}

func (s *FileStore) readAdmins() (adminCollection, error) {
	var admins adminCollection
	if err := s.readCollection(adminsFile, &admins); err != nil {
		return adminCollection{}, err
	}
	return admins, nil
}

func (r adminRecord) toDomain() domain.AdminUser {
	return domain.AdminUser{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.Password,
		Name:         r.Name,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
	}
}
