package storeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/eazybuy/storefront/internal/shop"
	"github.com/eazybuy/storefront/internal/webserver"
)

type productPayload struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// registerProductRoutes registers catalog browsing and product CRUD endpoints
func registerProductRoutes(s *webserver.WebServer) {
	s.ApiGET("/products", listProducts)
	s.ApiGET("/products/popular", popularProducts)
	s.ApiGET("/products/search", searchProducts)
	s.ApiGET("/products/:id", getProduct)
	s.ApiPOST("/products", createProduct)
	s.ApiPUT("/products/:id", updateProduct)
	s.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	query := shop.CatalogQuery{
		Search:   c.QueryParam("q"),
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
		Order:    c.QueryParam("order"),
		Page:     page,
		PageSize: pageSize,
	}

	rows, total, err := catalogSvc.List(c.Request().Context(), query)
	if err != nil {
		return serviceError(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func popularProducts(c echo.Context) error {
	rows, err := catalogSvc.Popular(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, rows)
}

func searchProducts(c echo.Context) error {
	rows, err := catalogSvc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := catalogSvc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, product)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	product, err := catalogSvc.Create(c.Request().Context(), shop.ProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Image:       payload.Image,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return created(c, product)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	product, err := catalogSvc.Update(c.Request().Context(), id, shop.ProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Image:       payload.Image,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, product)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := catalogSvc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
