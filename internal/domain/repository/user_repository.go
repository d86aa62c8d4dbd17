package repository

import (
	"context"

	"github.com/vecino/marketplace/internal/domain/entity"
)

// UserRepository extends the base contract with identity lookups.
type UserRepository interface {
	BaseRepository[entity.User]

	// FindByEmail resolves a single user for authentication-style lookups.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	FindByRole(ctx context.Context, role entity.UserRole, page *Page) ([]*entity.User, error)

	// UpdatePassword is kept separate from Update so password changes stay
	// distinguishable from profile edits.
	UpdatePassword(ctx context.Context, id string, passwordHash string) (*entity.User, error)
}
