package storeapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eazybuy/storefront/internal/webserver"
)

type cartItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

// registerCartRoutes registers the cart endpoints. They work for both
// authenticated users and anonymous sessions.
func registerCartRoutes(s *webserver.WebServer) {
	s.ApiGET("/cart/get_cart", getCart)
	s.ApiPOST("/cart/add_item", addCartItem)
	s.ApiPUT("/cart/update_item", updateCartItem)
	s.ApiDELETE("/cart/remove_item", removeCartItem)
	s.ApiDELETE("/cart/clear_cart", clearCart)
}

func getCart(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return serviceError(c, err)
	}
	view, err := cartSvc.GetCart(c.Request().Context(), owner)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, view)
}

func addCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}
	if payload.ProductID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "product_id is required", nil)
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}

	owner, err := cartOwner(c)
	if err != nil {
		return serviceError(c, err)
	}
	view, err := cartSvc.AddItem(c.Request().Context(), owner, payload.ProductID, quantity)
	if err != nil {
		return serviceError(c, err)
	}
	return created(c, view)
}

func updateCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}
	if payload.ProductID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "product_id is required", nil)
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}

	owner, err := cartOwner(c)
	if err != nil {
		return serviceError(c, err)
	}
	view, err := cartSvc.UpdateItem(c.Request().Context(), owner, payload.ProductID, quantity)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, view)
}

func removeCartItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	if err != nil || productID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "product_id is required", nil)
	}

	owner, err := cartOwner(c)
	if err != nil {
		return serviceError(c, err)
	}
	view, err := cartSvc.RemoveItem(c.Request().Context(), owner, productID)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, view)
}

func clearCart(c echo.Context) error {
	owner, err := cartOwner(c)
	if err != nil {
		return serviceError(c, err)
	}
	view, err := cartSvc.ClearCart(c.Request().Context(), owner)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, view)
}
