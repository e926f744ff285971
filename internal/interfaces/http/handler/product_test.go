package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

func newProductRouter(repo *MockProductRepository, actor identity.Actor) *gin.Engine {
	h := NewProductHandler(catalogapp.NewProductService(repo))

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(actorInjector(actor))
	h.RegisterRoutes(authed)

	return engine
}

func newCatalogProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Widget", "WID-001", valueobject.NewMoneyUSDFromFloat(19.99), 25)
	require.NoError(t, err)
	return p
}

func TestProductHandler_Create(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, adminActor())

	repo.On("FindBySKU", mock.Anything, "WID-001").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	w := performRequest(t, engine, http.MethodPost, "/api/v1/products", gin.H{
		"name":  "Widget",
		"sku":   "WID-001",
		"price": decimal.NewFromFloat(19.99),
		"stock": 25,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Widget", data["name"])
	assert.Equal(t, "WID-001", data["sku"])
	repo.AssertExpectations(t)
}

func TestProductHandler_Create_Forbidden(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, userActor())

	w := performRequest(t, engine, http.MethodPost, "/api/v1/products", gin.H{
		"name":  "Widget",
		"sku":   "WID-001",
		"price": decimal.NewFromFloat(19.99),
		"stock": 25,
	}, nil)

	assertErrorCode(t, w, http.StatusForbidden, "FORBIDDEN")
	repo.AssertNotCalled(t, "Save")
}

func TestProductHandler_Create_InvalidBody(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, adminActor())

	w := performRequest(t, engine, http.MethodPost, "/api/v1/products", gin.H{
		"name": "Widget",
	}, nil)

	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	resp := decodeResponse(t, w)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestProductHandler_GetByID(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, userActor())
	p := newCatalogProduct(t)

	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	w := performRequest(t, engine, http.MethodGet, "/api/v1/products/"+p.ID.String(), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "WID-001", data["sku"])
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, userActor())

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	w := performRequest(t, engine, http.MethodGet, "/api/v1/products/"+missing.String(), nil, nil)

	assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
}

func TestProductHandler_GetByID_InvalidID(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, userActor())

	w := performRequest(t, engine, http.MethodGet, "/api/v1/products/not-a-uuid", nil, nil)

	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
}

func TestProductHandler_List(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, userActor())
	p := newCatalogProduct(t)

	repo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*p}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	w := performRequest(t, engine, http.MethodGet, "/api/v1/products?page=1&page_size=20", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestProductHandler_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, adminActor())

	p := newCatalogProduct(t)
	id := p.ID
	repo.On("FindByID", mock.Anything, id).Return(p, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	w := performRequest(t, engine, http.MethodDelete, "/api/v1/products/"+id.String(), nil, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestProductHandler_AdjustStock(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, adminActor())
	p := newCatalogProduct(t)

	repo.On("Release", mock.Anything, p.ID, int64(10)).Return(nil)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	w := performRequest(t, engine, http.MethodPost, "/api/v1/products/"+p.ID.String()+"/stock", gin.H{
		"delta": 10,
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestProductHandler_AdjustStock_InsufficientStock(t *testing.T) {
	repo := new(MockProductRepository)
	engine := newProductRouter(repo, adminActor())
	p := newCatalogProduct(t)

	repo.On("TryReserve", mock.Anything, p.ID, int64(50)).Return(shared.ErrInsufficientStock)

	w := performRequest(t, engine, http.MethodPost, "/api/v1/products/"+p.ID.String()+"/stock", gin.H{
		"delta": -50,
	}, nil)

	assertErrorCode(t, w, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK")
}
