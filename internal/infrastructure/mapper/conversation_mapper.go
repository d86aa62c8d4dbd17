package mapper

import (
	"time"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

// ConversationMapper converts between Conversation entities and
// conversation documents. The last-message timestamp is kept in the
// document as RFC 3339 text.
type ConversationMapper struct {
	ids identifier.Codec
}

func NewConversationMapper(ids identifier.Codec) *ConversationMapper {
	return &ConversationMapper{ids: ids}
}

func (m *ConversationMapper) ToDomain(rec Record) *entity.Conversation {
	c := m.FromDocument(rec.Doc)
	c.ID = m.ids.Format(rec.ID)
	c.CreatedAt = rec.CreatedAt
	c.UpdatedAt = rec.UpdatedAt
	return c
}

func (m *ConversationMapper) FromDocument(doc Document) *entity.Conversation {
	c := &entity.Conversation{}
	if doc == nil {
		return c
	}
	c.ID = str(doc, "id")
	c.Participants = strList(doc, "participants")
	c.ProductID = str(doc, "productId")
	c.LastMessageID = str(doc, "lastMessageId")
	if raw := str(doc, "lastMessageAt"); raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			c.LastMessageAt = ts
		}
	}
	return c
}

func (m *ConversationMapper) ToPersistence(c *entity.Conversation) Document {
	doc := Document{}
	if c == nil {
		return doc
	}
	if c.ID != "" {
		doc["id"] = c.ID
	}
	if c.Participants != nil {
		doc["participants"] = strsToAny(c.Participants)
	}
	if c.ProductID != "" && identifier.Valid(c.ProductID) {
		doc["productId"] = c.ProductID
	}
	if c.LastMessageID != "" {
		doc["lastMessageId"] = c.LastMessageID
	}
	if !c.LastMessageAt.IsZero() {
		doc["lastMessageAt"] = c.LastMessageAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

func (m *ConversationMapper) NewDocument(c *entity.Conversation) Document {
	doc := m.ToPersistence(c)
	delete(doc, "id")
	if _, ok := doc["participants"]; !ok {
		doc["participants"] = []any{}
	}
	return doc
}

// MessageMapper converts between Message entities and message documents.
type MessageMapper struct {
	ids identifier.Codec
}

func NewMessageMapper(ids identifier.Codec) *MessageMapper {
	return &MessageMapper{ids: ids}
}

func (m *MessageMapper) ToDomain(rec Record) *entity.Message {
	msg := m.FromDocument(rec.Doc)
	msg.ID = m.ids.Format(rec.ID)
	msg.CreatedAt = rec.CreatedAt
	msg.UpdatedAt = rec.UpdatedAt
	return msg
}

func (m *MessageMapper) FromDocument(doc Document) *entity.Message {
	msg := &entity.Message{}
	if doc == nil {
		return msg
	}
	msg.ID = str(doc, "id")
	msg.ConversationID = str(doc, "conversationId")
	msg.SenderID = str(doc, "senderId")
	msg.RecipientID = str(doc, "recipientId")
	msg.Content = str(doc, "content")
	msg.Attachments = strList(doc, "attachments")
	msg.Read = boolean(doc, "read")
	return msg
}

func (m *MessageMapper) ToPersistence(msg *entity.Message) Document {
	doc := Document{}
	if msg == nil {
		return doc
	}
	if msg.ID != "" {
		doc["id"] = msg.ID
	}
	if msg.ConversationID != "" && identifier.Valid(msg.ConversationID) {
		doc["conversationId"] = msg.ConversationID
	}
	if msg.SenderID != "" && identifier.Valid(msg.SenderID) {
		doc["senderId"] = msg.SenderID
	}
	if msg.RecipientID != "" && identifier.Valid(msg.RecipientID) {
		doc["recipientId"] = msg.RecipientID
	}
	if msg.Content != "" {
		doc["content"] = msg.Content
	}
	if msg.Attachments != nil {
		doc["attachments"] = strsToAny(msg.Attachments)
	}
	if msg.Read {
		doc["read"] = true
	}
	return doc
}

func (m *MessageMapper) NewDocument(msg *entity.Message) Document {
	doc := m.ToPersistence(msg)
	delete(doc, "id")
	if _, ok := doc["read"]; !ok {
		doc["read"] = false
	}
	if _, ok := doc["attachments"]; !ok {
		doc["attachments"] = []any{}
	}
	return doc
}
