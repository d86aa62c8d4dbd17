package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// CategoryRepository is the generic collection unextended; the taxonomy
// needs no queries beyond the base contract.
type CategoryRepository struct {
	*Collection[entity.Category]
}

func NewCategoryRepository(pool *pgxpool.Pool, ids identifier.Codec, m *mapper.CategoryMapper) *CategoryRepository {
	return &CategoryRepository{Collection: NewCollection[entity.Category](pool, "categories", ids, m)}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
