package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

func TestBuildFilterContainment(t *testing.T) {
	where, args := buildFilter(identifier.UUID{}, mapper.Document{"status": "active"})
	assert.Equal(t, " WHERE doc @> $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, mapper.Document{"status": "active"}, args[0])
}

func TestBuildFilterLiftsID(t *testing.T) {
	id := uuid.New()
	doc := mapper.Document{"id": id.String(), "status": "active"}
	where, args := buildFilter(identifier.UUID{}, doc)

	assert.Equal(t, " WHERE id = $1 AND doc @> $2", where)
	require.Len(t, args, 2)
	assert.Equal(t, id, args[0])
	assert.Equal(t, mapper.Document{"status": "active"}, args[1])
	assert.NotContains(t, doc, "id")
}

func TestBuildFilterMalformedIDMatchesNothing(t *testing.T) {
	where, args := buildFilter(identifier.UUID{}, mapper.Document{"id": "not-a-uuid"})
	assert.Equal(t, " WHERE FALSE", where)
	assert.Empty(t, args)
}

func TestBuildFilterEmptyCriteria(t *testing.T) {
	where, args := buildFilter(identifier.UUID{}, mapper.Document{})
	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestPaginate(t *testing.T) {
	base := "SELECT 1"

	q, args := paginate(base, nil, nil)
	assert.Equal(t, base, q)
	assert.Empty(t, args)

	q, args = paginate(base, nil, &repository.Page{Skip: 0, Limit: 0})
	assert.Equal(t, base, q)
	assert.Empty(t, args)

	q, args = paginate(base, nil, &repository.Page{Limit: 20})
	assert.Equal(t, "SELECT 1 LIMIT $1", q)
	assert.Equal(t, []any{20}, args)

	q, args = paginate(base, nil, &repository.Page{Skip: 40, Limit: 20})
	assert.Equal(t, "SELECT 1 LIMIT $1 OFFSET $2", q)
	assert.Equal(t, []any{20, 40}, args)

	q, args = paginate(base, []any{"x"}, &repository.Page{Skip: 5})
	assert.Equal(t, "SELECT 1 OFFSET $2", q)
	assert.Equal(t, []any{"x", 5}, args)
}
