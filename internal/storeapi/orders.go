package storeapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eazybuy/storefront/internal/webserver"
)

type createOrderPayload struct {
	ShippingAddress string `json:"shipping_address"`
}

// registerOrderRoutes registers order endpoints; all require authentication
func registerOrderRoutes(s *webserver.WebServer) {
	s.ApiGET("/orders/my_orders", listMyOrders)
	s.ApiGET("/orders/order_detail", getOrderDetail)
	s.ApiPOST("/orders/create_order", createOrder)
}

func listMyOrders(c echo.Context) error {
	user, authed := webserver.CurrentUser(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided", nil)
	}
	orders, err := orderSvc.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, orders)
}

func getOrderDetail(c echo.Context) error {
	user, authed := webserver.CurrentUser(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided", nil)
	}

	orderID, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	order, err := orderSvc.GetOrder(c.Request().Context(), user.ID, orderID)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, order)
}

func createOrder(c echo.Context) error {
	user, authed := webserver.CurrentUser(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided", nil)
	}

	var payload createOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}

	order, err := orderSvc.CreateOrder(c.Request().Context(), user.ID, payload.ShippingAddress)
	if err != nil {
		return serviceError(c, err)
	}
	return created(c, echo.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}
