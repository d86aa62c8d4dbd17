package postgres

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// ConversationRepository implements repository.ConversationRepository.
// Conversations and messages live in separate collections; participants
// are stored sorted so a participant set has exactly one document shape,
// which is what makes FindOrCreate idempotent.
type ConversationRepository struct {
	*Collection[entity.Conversation]
	messages *Collection[entity.Message]
}

func NewConversationRepository(pool *pgxpool.Pool, ids identifier.Codec, cm *mapper.ConversationMapper, mm *mapper.MessageMapper) *ConversationRepository {
	return &ConversationRepository{
		Collection: NewCollection[entity.Conversation](pool, "conversations", ids, cm),
		messages:   NewCollection[entity.Message](pool, "messages", ids, mm),
	}
}

func (r *ConversationRepository) FindByParticipant(ctx context.Context, userID string, page *repository.Page) ([]*entity.Conversation, error) {
	q := "SELECT " + selectCols + " FROM conversations WHERE doc->'participants' @> to_jsonb($1::text) ORDER BY updated_at DESC, id"
	q, args := paginate(q, []any{userID}, page)
	return r.queryMany(ctx, q, args)
}

func (r *ConversationRepository) FindByProduct(ctx context.Context, productID string, page *repository.Page) ([]*entity.Conversation, error) {
	uid, err := r.ids.Parse(productID)
	if err != nil {
		return []*entity.Conversation{}, nil
	}
	q := "SELECT " + selectCols + " FROM conversations WHERE doc->>'productId' = $1 ORDER BY updated_at DESC, id"
	q, args := paginate(q, []any{r.ids.Format(uid)}, page)
	return r.queryMany(ctx, q, args)
}

// FindOrCreate resolves the conversation keyed by (participant set,
// product), creating it when absent. A malformed product id is rejected
// up front; letting it through would store a document without the
// product reference and the lookup would never match it again.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, participants []string, productID string) (*entity.Conversation, error) {
	if productID != "" {
		uid, err := r.ids.Parse(productID)
		if err != nil {
			return nil, repository.ErrNotFound
		}
		productID = r.ids.Format(uid)
	}
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)

	key := make([]any, len(sorted))
	for i, p := range sorted {
		key[i] = p
	}
	row := r.pool.QueryRow(ctx,
		"SELECT "+selectCols+" FROM conversations WHERE doc->'participants' = $1 AND coalesce(doc->>'productId', '') = $2",
		key, productID)
	rec, err := scanRecord(row)
	if err == nil {
		return r.mapper.ToDomain(rec), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return r.Create(ctx, &entity.Conversation{
		Participants:  sorted,
		ProductID:     productID,
		LastMessageAt: time.Now().UTC(),
	})
}

// GetMessages returns the conversation's messages oldest first.
func (r *ConversationRepository) GetMessages(ctx context.Context, conversationID string, page *repository.Page) ([]*entity.Message, error) {
	uid, err := r.ids.Parse(conversationID)
	if err != nil {
		return []*entity.Message{}, nil
	}
	q := "SELECT " + selectCols + " FROM messages WHERE doc->>'conversationId' = $1 ORDER BY created_at, id"
	q, args := paginate(q, []any{r.ids.Format(uid)}, page)
	return r.messages.queryMany(ctx, q, args)
}

// AddMessage appends the message and advances the conversation's
// last-message pointer. The append and the pointer update are two storage
// calls; the pointer is written unconditionally after the append.
func (r *ConversationRepository) AddMessage(ctx context.Context, conversationID string, msg repository.NewMessage) (*entity.Message, error) {
	uid, err := r.ids.Parse(conversationID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	if _, err := r.FindByID(ctx, conversationID); err != nil {
		return nil, err
	}

	created, err := r.messages.Create(ctx, &entity.Message{
		ConversationID: r.ids.Format(uid),
		SenderID:       msg.SenderID,
		RecipientID:    msg.RecipientID,
		Content:        msg.Content,
		Attachments:    msg.Attachments,
	})
	if err != nil {
		return nil, err
	}

	_, err = r.pool.Exec(ctx,
		"UPDATE conversations SET doc = doc || jsonb_build_object('lastMessageId', $2::text, 'lastMessageAt', $3::text), updated_at = now() WHERE id = $1",
		uid, created.ID, created.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	return created, nil
}

// MarkMessagesAsRead marks every unread message addressed to userID in the
// conversation in one bulk update.
func (r *ConversationRepository) MarkMessagesAsRead(ctx context.Context, conversationID string, userID string) (int64, error) {
	uid, err := r.ids.Parse(conversationID)
	if err != nil {
		return 0, repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages SET doc = doc || '{"read": true}'::jsonb, updated_at = now()
		WHERE doc->>'conversationId' = $1
		  AND doc->>'recipientId' = $2
		  AND NOT coalesce((doc->>'read')::bool, false)`,
		r.ids.Format(uid), userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ repository.ConversationRepository = (*ConversationRepository)(nil)
