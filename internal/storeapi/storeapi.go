package storeapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/eazybuy/storefront/internal/app"
	"github.com/eazybuy/storefront/internal/shop"
	"github.com/eazybuy/storefront/internal/webserver"
)

var (
	catalogSvc *shop.CatalogService
	cartSvc    *shop.CartService
	orderSvc   *shop.OrderService
	authSvc    *shop.AuthService
)

// Register wires the storefront routes onto the web server.
func Register(s *webserver.WebServer, ctx app.AppContext) {
	catalogSvc = shop.NewCatalogService(ctx.DB(), ctx)
	cartSvc = shop.NewCartService(ctx.DB())
	orderSvc = shop.NewOrderService(ctx.DB())
	authSvc = shop.NewAuthService(ctx.DB(), ctx)

	registerProductRoutes(s)
	registerCartRoutes(s)
	registerAuthRoutes(s)
	registerOrderRoutes(s)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := echo.Map{"code": code, "error": message}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// handleValidationError converts validator failures into a field-keyed map.
func handleValidationError(c echo.Context, err error) error {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return c.JSON(http.StatusBadRequest, echo.Map{
		"code":   "VALIDATION_ERROR",
		"error":  "Invalid request payload",
		"fields": fields,
	})
}

// serviceError maps the shop error taxonomy to HTTP responses.
func serviceError(c echo.Context, err error) error {
	var fields shop.FieldErrors
	if errors.As(err, &fields) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"code":   "VALIDATION_ERROR",
			"error":  fields.Error(),
			"fields": fields,
		})
	}

	switch {
	case errors.Is(err, shop.ErrProductNotFound),
		errors.Is(err, shop.ErrItemNotInCart),
		errors.Is(err, shop.ErrOrderNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, shop.ErrCartEmpty):
		return fail(c, http.StatusBadRequest, "CART_EMPTY", err.Error(), nil)
	case errors.Is(err, shop.ErrShippingAddress):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, shop.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)
	case errors.Is(err, shop.ErrTokenInvalid):
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", err.Error(), nil)
	}

	zap.L().Error("request failed", zap.Error(err))
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// cartOwner resolves the caller's cart identity: authenticated user first,
// anonymous session otherwise.
func cartOwner(c echo.Context) (shop.CartOwner, error) {
	if user, authed := webserver.CurrentUser(c); authed {
		return shop.UserOwner(user.ID), nil
	}
	sid, err := webserver.SessionID(c)
	if err != nil {
		return shop.CartOwner{}, err
	}
	return shop.SessionOwner(sid), nil
}
