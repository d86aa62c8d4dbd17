package entity

import "time"

// ProductStatus is the lifecycle status of a listing.
type ProductStatus string

const (
	ProductDraft    ProductStatus = "draft"
	ProductActive   ProductStatus = "active"
	ProductSold     ProductStatus = "sold"
	ProductInactive ProductStatus = "inactive"
)

// ProductCondition grades the physical condition of an item.
type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionLikeNew ProductCondition = "like_new"
	ConditionGood    ProductCondition = "good"
	ConditionFair    ProductCondition = "fair"
	ConditionPoor    ProductCondition = "poor"
)

// Product is the aggregate root of the catalog context.
// Relations (seller, category) are held by identifier only.
type Product struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Price          Money                  `json:"price"`
	SellerID       string                 `json:"sellerId"`
	CategoryID     string                 `json:"categoryId"`
	Status         ProductStatus          `json:"status"`
	Condition      ProductCondition       `json:"condition"`
	Location       *GeoLocation           `json:"location,omitempty"`
	Specifications []ProductSpecification `json:"specifications,omitempty"`
	Images         []ImageMetadata        `json:"images"`
	Tags           []string               `json:"tags"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// IsAvailable reports whether the product can currently be purchased.
func (p *Product) IsAvailable() bool {
	return p.Status == ProductActive
}

// PrimaryImage returns the image flagged primary, or the first image by
// convention when none is flagged. Nil when the product has no images.
func (p *Product) PrimaryImage() *ImageMetadata {
	if len(p.Images) == 0 {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return &p.Images[0]
}
