package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// A malformed product id must be rejected before the lookup runs. The
// mapper drops non-UUID product references from the stored document, so
// letting one through would create a conversation the keyed lookup can
// never find again, breaking FindOrCreate idempotency. The nil pool
// proves the rejection happens before any storage access.
func TestFindOrCreateRejectsMalformedProductID(t *testing.T) {
	ids := identifier.UUID{}
	r := NewConversationRepository(nil, ids, mapper.NewConversationMapper(ids), mapper.NewMessageMapper(ids))

	_, err := r.FindOrCreate(context.Background(), []string{uuid.NewString(), uuid.NewString()}, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
