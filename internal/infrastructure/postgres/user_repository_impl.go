package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// UserRepository implements repository.UserRepository on the users
// collection. Email uniqueness is enforced by the storage layer (unique
// index on the email field); duplicate inserts surface the driver error.
type UserRepository struct {
	*Collection[entity.User]
}

func NewUserRepository(pool *pgxpool.Pool, ids identifier.Codec, m *mapper.UserMapper) *UserRepository {
	return &UserRepository{Collection: NewCollection[entity.User](pool, "users", ids, m)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+selectCols+" FROM users WHERE doc->>'email' = $1", email)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role entity.UserRole, page *repository.Page) ([]*entity.User, error) {
	return r.FindBy(ctx, &entity.User{Role: role}, page)
}

// UpdatePassword touches only the password hash, nothing else, so a
// password change never rides along with profile edits.
func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) (*entity.User, error) {
	uid, err := r.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		"UPDATE users SET doc = doc || jsonb_build_object('passwordHash', $2::text), updated_at = now() WHERE id = $1 RETURNING "+selectCols,
		uid, passwordHash)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
