package mapper

import (
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

// NotificationMapper converts between Notification entities and
// notification documents. The structured payload is stored verbatim.
type NotificationMapper struct {
	ids identifier.Codec
}

func NewNotificationMapper(ids identifier.Codec) *NotificationMapper {
	return &NotificationMapper{ids: ids}
}

func (m *NotificationMapper) ToDomain(rec Record) *entity.Notification {
	n := m.FromDocument(rec.Doc)
	n.ID = m.ids.Format(rec.ID)
	n.CreatedAt = rec.CreatedAt
	n.UpdatedAt = rec.UpdatedAt
	return n
}

func (m *NotificationMapper) FromDocument(doc Document) *entity.Notification {
	n := &entity.Notification{}
	if doc == nil {
		return n
	}
	n.ID = str(doc, "id")
	n.UserID = str(doc, "userId")
	n.Type = entity.NotificationType(str(doc, "type"))
	n.Title = str(doc, "title")
	n.Message = str(doc, "message")
	n.Read = boolean(doc, "read")
	if data := sub(doc, "data"); data != nil {
		n.Data = data
	}
	return n
}

func (m *NotificationMapper) ToPersistence(n *entity.Notification) Document {
	doc := Document{}
	if n == nil {
		return doc
	}
	if n.ID != "" {
		doc["id"] = n.ID
	}
	if n.UserID != "" && identifier.Valid(n.UserID) {
		doc["userId"] = n.UserID
	}
	if n.Type != "" {
		doc["type"] = string(n.Type)
	}
	if n.Title != "" {
		doc["title"] = n.Title
	}
	if n.Message != "" {
		doc["message"] = n.Message
	}
	if n.Read {
		doc["read"] = true
	}
	if n.Data != nil {
		doc["data"] = n.Data
	}
	return doc
}

func (m *NotificationMapper) NewDocument(n *entity.Notification) Document {
	doc := m.ToPersistence(n)
	delete(doc, "id")
	if _, ok := doc["read"]; !ok {
		doc["read"] = false
	}
	if _, ok := doc["type"]; !ok {
		doc["type"] = string(entity.NotifySystem)
	}
	return doc
}
