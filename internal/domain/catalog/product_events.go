package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Event type constants for the catalog context
const (
	EventTypeProductCreated      = "catalog.product.created"
	EventTypeProductPriceChanged = "catalog.product.price_changed"
	EventTypeStockReserved       = "catalog.product.stock_reserved"
	EventTypeStockReleased       = "catalog.product.stock_released"
)

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, p.ID, "Product"),
		Name:            p.Name,
		SKU:             p.SKU,
		Price:           p.Price,
		Stock:           p.Stock,
	}
}

// ProductPriceChangedEvent is emitted when a product price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product, oldPrice, newPrice valueobject.Money) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, p.ID, "Product"),
		OldPrice:        oldPrice.Amount(),
		NewPrice:        newPrice.Amount(),
	}
}
