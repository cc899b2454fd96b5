package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"presentation-service/internal/auth"
	"presentation-service/internal/mocks"
	"presentation-service/internal/models"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/api/user/current", handler.Current)
	r.PUT("/api/user/update", handler.Update)
	r.POST("/api/user/list", handler.ListByIDs)
	r.POST("/api/user/send-verification", handler.SendVerification)
	r.GET("/api/admin/users", handler.AdminList)
	r.POST("/api/admin/users/:user_id/reset-password", handler.AdminResetPassword)
	return r
}

func TestUpdateUserRejectsWrongOldPassword(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewUserHandler(userRepo, new(mocks.MailerMock), nil, "http://localhost:3000")
	router := setupUserRouter(handler)

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	userRepo.On("GetUserByID", mock.Anything, 1).
		Return(models.User{ID: 1, Password: hash}, nil).Once()

	body := bytes.NewBufferString(`{"name":"alice","password":"wrong","new_password":"secret2"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/user/update", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListUsersDeduplicatesAndProjects(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewUserHandler(userRepo, new(mocks.MailerMock), nil, "http://localhost:3000")
	router := setupUserRouter(handler)

	userRepo.On("ListUsersByIDs", mock.Anything, []int{2, 3}).
		Return([]models.User{
			{ID: 2, Name: "bob", Email: "bob@example.com", Password: "hash"},
			{ID: 3, Name: "carol", Email: "carol@example.com", Password: "hash"},
		}, nil).Once()

	body := bytes.NewBufferString(`{"ids":[2,3,2]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/list", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.PublicUser `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	require.NotContains(t, rec.Body.String(), "hash")
	userRepo.AssertExpectations(t)
}

func TestSendVerificationBuildsActivationLink(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	mail := new(mocks.MailerMock)
	handler := NewUserHandler(userRepo, mail, nil, "http://localhost:3000")
	router := setupUserRouter(handler)

	userRepo.On("GetUserByID", mock.Anything, 1).
		Return(models.User{ID: 1, Email: "alice@example.com", ActiveCode: "code-1"}, nil).Once()
	mail.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "userId=1") && strings.Contains(body, "activeCode=code-1")
	})).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/user/send-verification", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mail.AssertExpectations(t)
}

func TestAdminListPassesSearchQuery(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewUserHandler(userRepo, new(mocks.MailerMock), nil, "http://localhost:3000")
	router := setupUserRouter(handler)

	userRepo.On("SearchUsers", mock.Anything, "ali").
		Return([]models.User{{ID: 2, Name: "alice"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?search=ali", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestAdminResetPasswordReturnsNewOne(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewUserHandler(userRepo, new(mocks.MailerMock), nil, "http://localhost:3000")
	router := setupUserRouter(handler)

	userRepo.On("SetPassword", mock.Anything, 2, mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/2/reset-password", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			NewPassword string `json:"new_password"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data.NewPassword, 8)
	userRepo.AssertExpectations(t)
}
