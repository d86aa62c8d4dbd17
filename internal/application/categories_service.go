package application

import (
	"context"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
)

// CategoriesService is a thin pass-through over the category collection.
type CategoriesService struct {
	Categories repository.CategoryRepository
}

func NewCategoriesService(categories repository.CategoryRepository) *CategoriesService {
	return &CategoriesService{Categories: categories}
}

func (s *CategoriesService) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Category", id)
	}
	return c, nil
}

func (s *CategoriesService) FindAll(ctx context.Context, page *repository.Page) ([]*entity.Category, error) {
	return s.Categories.FindAll(ctx, page)
}

func (s *CategoriesService) Create(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	return s.Categories.Create(ctx, c)
}

func (s *CategoriesService) Update(ctx context.Context, id string, patch *entity.Category) (*entity.Category, error) {
	c, err := s.Categories.Update(ctx, id, patch)
	if err != nil {
		return nil, translateNotFound(err, "Category", id)
	}
	return c, nil
}

func (s *CategoriesService) Delete(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Categories.Delete(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Category", id)
	}
	return c, nil
}
