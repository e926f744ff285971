package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable product aggregate root.
// Price is snapshotted into order lines at purchase time; Stock is the
// single contended counter in the system and is only ever mutated through
// the ledger operations on ProductRepository.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Stock       int64           `gorm:"not null;default:0;check:stock >= 0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, sku string, price valueobject.Money, stock int64) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Price:             price.Amount(),
		Stock:             stock,
		Active:            true,
	}

	p.AddDomainEvent(NewProductCreatedEvent(p))

	return p, nil
}

// ChangePrice updates the product price.
// Existing order lines keep their snapshotted unit price.
func (p *Product) ChangePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	old := p.Price
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()

	if !old.Equal(p.Price) {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, valueobject.NewMoneyUSD(old), price))
	}

	return nil
}

// SetDescription sets the product description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
}

// Deactivate removes the product from sale without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate returns the product to sale
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// InStock returns true if at least the requested quantity is available.
// This is a read-side hint only; the authoritative check is the conditional
// decrement performed by ProductRepository.TryReserve.
func (p *Product) InStock(quantity int64) bool {
	return p.Stock >= quantity
}

// GetPriceMoney returns the price as Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}
