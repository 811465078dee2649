package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospitron/internal/delivery/dto"
	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/usecase"
	"hospitron/pkg/response"
	"hospitron/pkg/validator"
)

// AuthHandler is the JSON counterpart of the login page. A successful login
// returns the token for Bearer use and also sets the session cookie, so a
// browser client shares its session with the HTML pages.
type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	authMiddleware *middleware.AuthMiddleware
	validator      *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, authMiddleware *middleware.AuthMiddleware, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		authMiddleware: authMiddleware,
		validator:      validator,
	}
}

// Login handles POST /auth/login
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	login, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		response.InternalServerError(w, "Failed to login")
		return
	}

	h.authMiddleware.SetCookie(w, login.Token, login.ExpiresAt)
	response.Success(w, http.StatusOK, "Login successful", login)
}

// Logout ends the session behind the request's token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), session.ID, session.User.ID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	h.authMiddleware.ClearCookie(w)
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.authUsecase.CurrentUser(r.Context(), session.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			response.Unauthorized(w, "Session has expired")
			return
		}
		response.InternalServerError(w, "Failed to get user info")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
