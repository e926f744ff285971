package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog management. Reads are open to any
// caller; every mutation is admin only. Stock is set once at creation
// and from then on only moves through order reservations and releases.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product. Admin only.
func (s *ProductService) Create(ctx context.Context, actor identity.Actor, req CreateProductRequest) (*ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	existing, err := s.productRepo.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.USD)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, price, req.Stock)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		product.SetDescription(req.Description)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Search != "" {
		domainFilter.Filters["search"] = filter.Search
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update updates a product's editable fields. Admin only.
func (s *ProductService) Update(ctx context.Context, actor identity.Actor, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.USD)
		if err != nil {
			return nil, err
		}
		if err := product.ChangePrice(price); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock moves a product's stock counter by a delta. Admin only.
// Positive deltas restock through the same atomic increment that
// cancellations use; negative deltas write stock off and fail with
// INSUFFICIENT_STOCK rather than drive the counter below zero.
func (s *ProductService) AdjustStock(ctx context.Context, actor identity.Actor, productID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	if req.Delta == 0 {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT", "Stock adjustment cannot be zero")
	}

	if req.Delta > 0 {
		err := s.productRepo.Release(ctx, productID, req.Delta)
		if err != nil {
			return nil, err
		}
	} else {
		err := s.productRepo.TryReserve(ctx, productID, -req.Delta)
		if err != nil {
			return nil, err
		}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog. Admin only.
// Order lines keep their snapshots, so past orders are unaffected.
func (s *ProductService) Delete(ctx context.Context, actor identity.Actor, productID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, productID)
}
