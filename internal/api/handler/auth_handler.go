package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workforce-hub/auth-api/internal/core/domain"
	"github.com/workforce-hub/auth-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type requestOTPRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
}

type verifyOTPRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3"`
	OTP        string `json:"otp"        validate:"required,len=4"`
}

type requestOTPResponse struct {
	Success     bool   `json:"success"`
	Destination string `json:"destination"`
	TTLSeconds  int    `json:"ttlSeconds"`
	OTP         string `json:"otp,omitempty"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// RequestOTP issues a one-time passcode for an identifier.
//
// @Summary      Request a login code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestOTPRequest  true  "Phone number or email"
// @Success      200   {object}  requestOTPResponse
// @Failure      400   {object}  validationResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/request-otp [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ch, err := h.authService.RequestOTP(c.Request().Context(), req.Identifier)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requestOTPResponse{
		Success:     true,
		Destination: ch.Destination,
		TTLSeconds:  int(ch.TTL.Seconds()),
		OTP:         ch.Code,
	})
}

// VerifyOTP exchanges a code for a session token.
//
// @Summary      Verify a login code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Identifier and code"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.authService.VerifyOTP(c.Request().Context(), req.Identifier, req.OTP)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Success: true, Token: sess.Token, User: sess.User})
}

// errorResponse and validationResponse document the envelopes rendered by
// the API error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}
