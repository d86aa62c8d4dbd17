package mapper

import (
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

// CategoryMapper converts between Category entities and category documents.
type CategoryMapper struct {
	ids identifier.Codec
}

func NewCategoryMapper(ids identifier.Codec) *CategoryMapper {
	return &CategoryMapper{ids: ids}
}

func (m *CategoryMapper) ToDomain(rec Record) *entity.Category {
	c := m.FromDocument(rec.Doc)
	c.ID = m.ids.Format(rec.ID)
	c.CreatedAt = rec.CreatedAt
	c.UpdatedAt = rec.UpdatedAt
	return c
}

func (m *CategoryMapper) FromDocument(doc Document) *entity.Category {
	c := &entity.Category{}
	if doc == nil {
		return c
	}
	c.ID = str(doc, "id")
	c.Name = str(doc, "name")
	c.Description = str(doc, "description")
	c.ParentCategoryID = str(doc, "parentCategoryId")
	c.Attributes = strList(doc, "attributes")
	return c
}

func (m *CategoryMapper) ToPersistence(c *entity.Category) Document {
	doc := Document{}
	if c == nil {
		return doc
	}
	if c.ID != "" {
		doc["id"] = c.ID
	}
	if c.Name != "" {
		doc["name"] = c.Name
	}
	if c.Description != "" {
		doc["description"] = c.Description
	}
	if c.ParentCategoryID != "" && identifier.Valid(c.ParentCategoryID) {
		doc["parentCategoryId"] = c.ParentCategoryID
	}
	if c.Attributes != nil {
		doc["attributes"] = strsToAny(c.Attributes)
	}
	return doc
}

func (m *CategoryMapper) NewDocument(c *entity.Category) Document {
	doc := m.ToPersistence(c)
	delete(doc, "id")
	return doc
}
