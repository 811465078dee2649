package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"hospitron/internal/delivery/dto"
	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/usecase"
	"hospitron/pkg/validator"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthHandler() (*mockAuthUsecase, *AuthHandler) {
	log, _ := logtest.NewNullLogger()
	uc := new(mockAuthUsecase)
	return uc, NewAuthHandler(uc, middleware.NewAuthMiddleware(uc, log, "token"), validator.NewValidator())
}

func TestAuthHandler_Login(t *testing.T) {
	uc, h := newAuthHandler()

	uc.On("Login", mock.Anything, &dto.LoginRequest{Email: "doctor@hospital.com", Password: "doctor123"}).
		Return(&dto.LoginResponse{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	uc.On("Login", mock.Anything, &dto.LoginRequest{Email: "doctor@hospital.com", Password: "wrong"}).
		Return(nil, usecase.ErrInvalidCredentials)
	uc.On("Login", mock.Anything, &dto.LoginRequest{Email: "doctor@hospital.com", Password: "boom"}).
		Return(nil, errors.New("redis down"))

	rec, env := serve(t, "/auth/login", http.MethodPost, "/auth/login", `{"email":"doctor@hospital.com","password":"doctor123"}`, h.Login)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", env.Message)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "token=t")

	rec, env = serve(t, "/auth/login", http.MethodPost, "/auth/login", `{"email":"doctor@hospital.com","password":"wrong"}`, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))

	rec, _ = serve(t, "/auth/login", http.MethodPost, "/auth/login", `{"email":"doctor@hospital.com","password":"boom"}`, h.Login)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec, env = serve(t, "/auth/login", http.MethodPost, "/auth/login", `{"email":"not-an-email","password":""}`, h.Login)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", env.Error["email"])
	assert.Equal(t, "password is required", env.Error["password"])
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	uc, h := newAuthHandler()

	uc.On("Logout", mock.Anything, "s-1", "1").Return(nil)
	uc.On("CurrentUser", mock.Anything, "s-1").Return(&dto.UserResponse{ID: "1", Name: "Dr. John Smith"}, nil).Once()

	rec, env := serve(t, "/auth/logout", http.MethodPost, "/auth/logout", "", h.Logout)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", env.Message)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")

	rec, env = serve(t, "/auth/me", http.MethodGet, "/auth/me", "", h.GetCurrentUser)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","email":"","name":"Dr. John Smith","role":"","initial":""}`, string(env.Data))

	uc.On("CurrentUser", mock.Anything, "s-1").Return(nil, usecase.ErrSessionNotFound)
	rec, _ = serve(t, "/auth/me", http.MethodGet, "/auth/me", "", h.GetCurrentUser)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
