package models

import (
	"time"

	"gorm.io/gorm"

	"storefront/internal/apperrors"
)

// Product categories accepted by the catalog.
const (
	CategorySmartphone    = "smartphone"
	CategoryElectronics   = "electronics"
	CategoryHomeAppliance = "home-appliance"
)

const (
	DefaultTextColor = "#000000"
	DefaultBgColor   = "#ffffff"
)

// Categories lists every valid product category.
var Categories = []string{CategorySmartphone, CategoryElectronics, CategoryHomeAppliance}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Product represents a catalog entry. Images are replaced wholesale on update.
type Product struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" bson:"name" gorm:"not null"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	MRP         float64   `json:"mrp" bson:"mrp"`
	Discount    float64   `json:"discount" bson:"discount"`
	Title       string    `json:"title,omitempty" bson:"title,omitempty"`
	BankName    string    `json:"bankname,omitempty" bson:"bankname,omitempty"`
	BankOffer   float64   `json:"bankOffer" bson:"bankOffer"`
	Images      []Image   `json:"images" bson:"images" gorm:"serializer:json"`
	Category    string    `json:"category" bson:"category" gorm:"index;type:varchar(32);not null"`
	TextColor   string    `json:"textColor" bson:"textColor" gorm:"type:varchar(16)"`
	BgColor     string    `json:"bgColor" bson:"bgColor" gorm:"type:varchar(16)"`
	CreatedBy   string    `json:"createdBy,omitempty" bson:"createdBy,omitempty" gorm:"index;type:varchar(36)"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills the display colors when they were left empty.
func (p *Product) ApplyDefaults() {
	if p.TextColor == "" {
		p.TextColor = DefaultTextColor
	}
	if p.BgColor == "" {
		p.BgColor = DefaultBgColor
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
}

// Validate checks the invariants every store enforces before persisting.
func (p *Product) Validate() error {
	if p.Name == "" {
		return apperrors.New(apperrors.ValidationFailed, "product name is required")
	}
	if !ValidCategory(p.Category) {
		return apperrors.New(apperrors.ValidationFailed, "invalid category: "+p.Category)
	}
	return nil
}

// BeforeSave runs the store-level checks for GORM backends.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// ProductView is a product as returned by read endpoints.
type ProductView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price"`
	MRP         float64        `json:"mrp"`
	Discount    float64        `json:"discount"`
	Title       string         `json:"title,omitempty"`
	BankName    string         `json:"bankname,omitempty"`
	BankOffer   float64        `json:"bankOffer"`
	Images      []EncodedImage `json:"images"`
	Category    string         `json:"category"`
	TextColor   string         `json:"textColor"`
	BgColor     string         `json:"bgColor"`
	CreatedBy   string         `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewProductView pairs p with its already encoded images.
func NewProductView(p *Product, images []EncodedImage) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		MRP:         p.MRP,
		Discount:    p.Discount,
		Title:       p.Title,
		BankName:    p.BankName,
		BankOffer:   p.BankOffer,
		Images:      images,
		Category:    p.Category,
		TextColor:   p.TextColor,
		BgColor:     p.BgColor,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
