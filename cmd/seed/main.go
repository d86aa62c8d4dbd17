package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/vecino/marketplace/config"
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
	pginfra "github.com/vecino/marketplace/internal/infrastructure/postgres"
	"github.com/vecino/marketplace/pkg/helpers"
)

// Seeds a demo buyer, seller, category and listing for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	ids := identifier.UUID{}
	users := pginfra.NewUserRepository(pool, ids, mapper.NewUserMapper(ids))
	categories := pginfra.NewCategoryRepository(pool, ids, mapper.NewCategoryMapper(ids))
	products := pginfra.NewProductRepository(pool, ids, mapper.NewProductMapper(ids))

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	buyer, err := users.Create(ctx, &entity.User{
		Email:        "buyer@example.com",
		Name:         "Demo Buyer",
		PasswordHash: hash,
		Role:         entity.RoleBuyer,
	})
	if err != nil {
		log.Fatalf("failed to seed buyer: %v", err)
	}
	fmt.Printf("seeded buyer: id=%s email=%s password=password123\n", buyer.ID, buyer.Email)

	seller, err := users.Create(ctx, &entity.User{
		Email:        "seller@example.com",
		Name:         "Demo Seller",
		PasswordHash: hash,
		Role:         entity.RoleSeller,
	})
	if err != nil {
		log.Fatalf("failed to seed seller: %v", err)
	}
	fmt.Printf("seeded seller: id=%s email=%s password=password123\n", seller.ID, seller.Email)

	category, err := categories.Create(ctx, &entity.Category{
		Name:        "Electronics",
		Description: "Phones, laptops and accessories",
	})
	if err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}
	fmt.Printf("seeded category: id=%s name=%s\n", category.ID, category.Name)

	product, err := products.Create(ctx, &entity.Product{
		Title:       "Demo Phone",
		Description: "Lightly used phone in great condition",
		Price:       entity.Money{Amount: 7999, Currency: entity.DefaultCurrency},
		SellerID:    seller.ID,
		CategoryID:  category.ID,
		Status:      entity.ProductActive,
		Condition:   entity.ConditionLikeNew,
		Tags:        []string{"phone", "electronics"},
	})
	if err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	fmt.Printf("seeded product: id=%s title=%s\n", product.ID, product.Title)
}
