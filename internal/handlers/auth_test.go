package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"presentation-service/internal/auth"
	"presentation-service/internal/mocks"
	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/activate", handler.Activate)
	return r
}

func TestRegisterSuccess(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("secret", time.Hour), nil)
	router := setupAuthRouter(handler)

	userRepo.On("CreateUser", mock.Anything, "alice", "alice@example.com", mock.Anything, mock.Anything).
		Return(models.User{ID: 1, Name: "alice", Email: "alice@example.com", Role: models.RoleUser}, nil).Once()

	body := bytes.NewBufferString(`{"name":"alice","email":"alice@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, models.StatusSuccess, resp.Code)
	userRepo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("secret", time.Hour), nil)
	router := setupAuthRouter(handler)

	userRepo.On("CreateUser", mock.Anything, "alice", "alice@example.com", mock.Anything, mock.Anything).
		Return(models.User{}, repositories.ErrEmailTaken).Once()

	body := bytes.NewBufferString(`{"name":"alice","email":"alice@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Email is used!", resp.Message)
	userRepo.AssertExpectations(t)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler := NewAuthHandler(new(mocks.UserRepositoryMock), auth.NewTokenIssuer("secret", time.Hour), nil)
	router := setupAuthRouter(handler)

	body := bytes.NewBufferString(`{"name":"alice","email":"alice@example.com","password":"tiny"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	handler := NewAuthHandler(userRepo, issuer, nil)
	router := setupAuthRouter(handler)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(models.User{ID: 1, Email: "alice@example.com", Password: hash, Role: models.RoleUser}, nil).Once()

	body := bytes.NewBufferString(`{"email":"alice@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code string `json:"code"`
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, models.StatusSuccess, resp.Code)
	require.NotEmpty(t, resp.Data.AccessToken)

	claims, err := issuer.Validate(resp.Data.AccessToken)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)
	userRepo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("secret", time.Hour), nil)
	router := setupAuthRouter(handler)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(models.User{ID: 1, Email: "alice@example.com", Password: hash}, nil).Once()

	body := bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("secret", time.Hour), nil)
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"email":"ghost@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestActivateInvalidCode(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, auth.NewTokenIssuer("secret", time.Hour), nil)
	router := setupAuthRouter(handler)

	userRepo.On("ActivateUser", mock.Anything, 1, "bad-code").
		Return(repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"user_id":1,"active_code":"bad-code"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/activate", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertExpectations(t)
}
