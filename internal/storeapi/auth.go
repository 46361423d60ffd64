package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eazybuy/storefront/internal/shop"
	"github.com/eazybuy/storefront/internal/webserver"
)

type registerPayload struct {
	Username  string `json:"username" validate:"required,min=1,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profilePayload struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// registerAuthRoutes registers registration, login and profile endpoints
func registerAuthRoutes(s *webserver.WebServer) {
	s.ApiPOST("/auth/register", registerUser)
	s.ApiPOST("/auth/login", loginUser)
	s.ApiPOST("/auth/logout", logoutUser)
	s.ApiGET("/auth/profile", getProfile)
	s.ApiPUT("/auth/update_profile", updateProfile)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	user, token, err := authSvc.Register(c.Request().Context(), shop.RegisterInput{
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  payload.Password,
		Password2: payload.Password2,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return created(c, echo.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token.Key,
	})
}

func loginUser(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	user, token, err := authSvc.Login(c.Request().Context(), payload.Username, payload.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return ok(c, echo.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token.Key,
	})
}

func logoutUser(c echo.Context) error {
	user, authed := webserver.CurrentUser(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided", nil)
	}
	if err := authSvc.Logout(c.Request().Context(), user.ID); err != nil {
		return serviceError(c, err)
	}
	return ok(c, echo.Map{"message": "Logged out successfully"})
}

func getProfile(c echo.Context) error {
	user, authed := webserver.CurrentUser(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided", nil)
	}
	profile, err := authSvc.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, profile)
}

func updateProfile(c echo.Context) error {
	user, authed := webserver.CurrentUser(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided", nil)
	}

	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", nil)
	}

	profile, err := authSvc.UpdateProfile(c.Request().Context(), user.ID, shop.ProfileUpdate{
		Username:  payload.Username,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return ok(c, profile)
}
