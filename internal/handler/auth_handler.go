package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-backend/internal/model"
	"github.com/learnhub/learnhub-backend/internal/response"
	"github.com/learnhub/learnhub-backend/internal/service"
	"github.com/learnhub/learnhub-backend/internal/validator"
)

// AuthHandler handles administrator signup and signin.
type AuthHandler struct {
	adminService *service.AdminService
	log          zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(adminService *service.AdminService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		adminService: adminService,
		log:          log.With().Str("component", "auth_handler").Logger(),
	}
}

// Signup godoc
// POST /signup
// Registers a new administrator. No token is issued here; the administrator
// signs in separately.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "wrong format of input", fields)
		return
	}

	admin, err := h.adminService.Register(c.Request.Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.log.Error().Err(err).Str("email", req.Email).Msg("Admin signup failed")
		response.Fail(c, http.StatusInternalServerError, "error creating the account")
		return
	}

	h.log.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("Admin signed up")
	response.Message(c, http.StatusOK, "you are signed up as an admin")
}

// Signin godoc
// POST /signin
// Exchanges email + password for a session token.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, "wrong format of input", fields)
		return
	}

	token, err := h.adminService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.Fail(c, http.StatusForbidden, "user does not exist")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusForbidden, "incorrect creds")
		default:
			h.log.Error().Err(err).Msg("Signin lookup failed")
			response.Fail(c, http.StatusInternalServerError, "error finding admin")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}
