package mapper

import (
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

// ProductMapper converts between Product entities and product documents.
//
// Seller and category references are only written when they parse as
// valid identifiers; anything else is dropped from the document rather
// than failing the write, matching the permissive legacy behavior.
type ProductMapper struct {
	ids identifier.Codec
}

func NewProductMapper(ids identifier.Codec) *ProductMapper {
	return &ProductMapper{ids: ids}
}

func (m *ProductMapper) ToDomain(rec Record) *entity.Product {
	p := m.FromDocument(rec.Doc)
	p.ID = m.ids.Format(rec.ID)
	p.CreatedAt = rec.CreatedAt
	p.UpdatedAt = rec.UpdatedAt
	return p
}

// FromDocument maps a bare document, reading the id from the document
// itself when present. Also used for order-item product snapshots.
func (m *ProductMapper) FromDocument(doc Document) *entity.Product {
	p := &entity.Product{}
	if doc == nil {
		return p
	}
	p.ID = str(doc, "id")
	p.Title = str(doc, "title")
	p.Description = str(doc, "description")
	p.Price = moneyFromDoc(sub(doc, "price"))
	p.SellerID = str(doc, "sellerId")
	p.CategoryID = str(doc, "categoryId")
	p.Status = entity.ProductStatus(str(doc, "status"))
	p.Condition = entity.ProductCondition(str(doc, "condition"))
	if loc := sub(doc, "location"); loc != nil {
		g := geoFromDoc(loc)
		p.Location = &g
	}
	if specs := docList(doc, "specifications"); specs != nil {
		p.Specifications = make([]entity.ProductSpecification, 0, len(specs))
		for _, s := range specs {
			p.Specifications = append(p.Specifications, entity.ProductSpecification{
				Key:   str(s, "key"),
				Value: str(s, "value"),
				Unit:  str(s, "unit"),
			})
		}
	}
	if images := docList(doc, "images"); images != nil {
		p.Images = make([]entity.ImageMetadata, 0, len(images))
		for _, img := range images {
			p.Images = append(p.Images, imageFromDoc(img))
		}
	}
	p.Tags = strList(doc, "tags")
	return p
}

func (m *ProductMapper) ToPersistence(p *entity.Product) Document {
	doc := Document{}
	if p == nil {
		return doc
	}
	if p.ID != "" {
		doc["id"] = p.ID
	}
	if p.Title != "" {
		doc["title"] = p.Title
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}
	if p.Price != (entity.Money{}) {
		doc["price"] = moneyDoc(p.Price)
	}
	if p.SellerID != "" && identifier.Valid(p.SellerID) {
		doc["sellerId"] = p.SellerID
	}
	if p.CategoryID != "" && identifier.Valid(p.CategoryID) {
		doc["categoryId"] = p.CategoryID
	}
	if p.Status != "" {
		doc["status"] = string(p.Status)
	}
	if p.Condition != "" {
		doc["condition"] = string(p.Condition)
	}
	if p.Location != nil {
		doc["location"] = geoDoc(*p.Location)
	}
	if p.Specifications != nil {
		specs := make([]Document, 0, len(p.Specifications))
		for _, s := range p.Specifications {
			spec := Document{"key": s.Key, "value": s.Value}
			if s.Unit != "" {
				spec["unit"] = s.Unit
			}
			specs = append(specs, spec)
		}
		doc["specifications"] = docsToAny(specs)
	}
	if p.Images != nil {
		images := make([]Document, 0, len(p.Images))
		for _, img := range p.Images {
			images = append(images, imageDoc(img))
		}
		doc["images"] = docsToAny(images)
	}
	if p.Tags != nil {
		doc["tags"] = strsToAny(p.Tags)
	}
	return doc
}

func (m *ProductMapper) NewDocument(p *entity.Product) Document {
	doc := m.ToPersistence(p)
	delete(doc, "id")
	if _, ok := doc["status"]; !ok {
		doc["status"] = string(entity.ProductDraft)
	}
	if _, ok := doc["price"]; !ok {
		doc["price"] = moneyDoc(entity.Money{Amount: 0, Currency: entity.DefaultCurrency})
	}
	if _, ok := doc["images"]; !ok {
		doc["images"] = []any{}
	}
	if _, ok := doc["tags"]; !ok {
		doc["tags"] = []any{}
	}
	if _, ok := doc["specifications"]; !ok {
		doc["specifications"] = []any{}
	}
	return doc
}

func imageDoc(img entity.ImageMetadata) Document {
	doc := Document{"url": img.URL, "isPrimary": img.IsPrimary}
	if img.Alt != "" {
		doc["alt"] = img.Alt
	}
	if img.Width != 0 {
		doc["width"] = img.Width
	}
	if img.Height != 0 {
		doc["height"] = img.Height
	}
	return doc
}

func imageFromDoc(doc Document) entity.ImageMetadata {
	return entity.ImageMetadata{
		URL:       str(doc, "url"),
		Alt:       str(doc, "alt"),
		Width:     integer(doc, "width"),
		Height:    integer(doc, "height"),
		IsPrimary: boolean(doc, "isPrimary"),
	}
}
