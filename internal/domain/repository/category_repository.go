package repository

import "github.com/vecino/marketplace/internal/domain/entity"

// CategoryRepository needs nothing beyond the generic contract.
type CategoryRepository interface {
	BaseRepository[entity.Category]
}
