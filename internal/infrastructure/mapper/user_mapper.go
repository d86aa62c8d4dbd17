package mapper

import (
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

// UserMapper converts between User entities and user documents.
type UserMapper struct {
	ids identifier.Codec
}

func NewUserMapper(ids identifier.Codec) *UserMapper {
	return &UserMapper{ids: ids}
}

func (m *UserMapper) ToDomain(rec Record) *entity.User {
	u := m.FromDocument(rec.Doc)
	u.ID = m.ids.Format(rec.ID)
	u.CreatedAt = rec.CreatedAt
	u.UpdatedAt = rec.UpdatedAt
	return u
}

// FromDocument maps a bare document, reading the id from the document
// itself when present. Used for embedded snapshots and criteria handling.
func (m *UserMapper) FromDocument(doc Document) *entity.User {
	u := &entity.User{}
	if doc == nil {
		return u
	}
	u.ID = str(doc, "id")
	u.Email = str(doc, "email")
	u.Name = str(doc, "name")
	u.PasswordHash = str(doc, "passwordHash")
	u.Role = entity.UserRole(str(doc, "role"))
	u.Phone = str(doc, "phone")
	if addr := sub(doc, "address"); addr != nil {
		a := addressFromDoc(addr)
		u.Address = &a
	}
	return u
}

func (m *UserMapper) ToPersistence(u *entity.User) Document {
	doc := Document{}
	if u == nil {
		return doc
	}
	if u.ID != "" {
		doc["id"] = u.ID
	}
	if u.Email != "" {
		doc["email"] = u.Email
	}
	if u.Name != "" {
		doc["name"] = u.Name
	}
	if u.PasswordHash != "" {
		doc["passwordHash"] = u.PasswordHash
	}
	if u.Role != "" {
		doc["role"] = string(u.Role)
	}
	if u.Phone != "" {
		doc["phone"] = u.Phone
	}
	if u.Address != nil {
		doc["address"] = addressDoc(*u.Address)
	}
	return doc
}

func (m *UserMapper) NewDocument(u *entity.User) Document {
	doc := m.ToPersistence(u)
	delete(doc, "id")
	if _, ok := doc["role"]; !ok {
		doc["role"] = string(entity.RoleBuyer)
	}
	return doc
}
