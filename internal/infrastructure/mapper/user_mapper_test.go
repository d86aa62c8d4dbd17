package mapper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

func TestUserMapperRoundTrip(t *testing.T) {
	m := NewUserMapper(identifier.UUID{})
	u := &entity.User{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleSeller,
		Phone:        "+639171234567",
		Address:      &entity.Address{Street: "1 Mabini St", City: "Quezon City", Country: "PH"},
	}

	rec := Record{ID: uuid.New(), Doc: m.NewDocument(u), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	got := m.ToDomain(rec)

	assert.Equal(t, rec.ID.String(), got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Name, got.Name)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Equal(t, u.Role, got.Role)
	assert.Equal(t, u.Phone, got.Phone)
	require.NotNil(t, got.Address)
	assert.Equal(t, *u.Address, *got.Address)
}

func TestUserMapperSparsePatch(t *testing.T) {
	m := NewUserMapper(identifier.UUID{})

	// a name-only patch must not touch email or password
	doc := m.ToPersistence(&entity.User{Name: "New Name"})
	assert.Equal(t, Document{"name": "New Name"}, doc)
}

func TestUserMapperDefaultsRoleOnInsert(t *testing.T) {
	m := NewUserMapper(identifier.UUID{})
	doc := m.NewDocument(&entity.User{Email: "b@example.com", Name: "B"})
	assert.Equal(t, string(entity.RoleBuyer), doc["role"])
}
