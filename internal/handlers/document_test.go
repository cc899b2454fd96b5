package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"presentation-service/internal/mocks"
	"presentation-service/internal/models"
	"presentation-service/internal/repositories"
)

func setupDocumentRouter(handler *DocumentHandler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Set("userRole", role)
		c.Next()
	})
	r.POST("/api/document/create", handler.Create)
	r.POST("/api/document/list", handler.List)
	r.PUT("/api/document/:pres_id", handler.Update)
	r.DELETE("/api/document/:pres_id", handler.Delete)
	return r
}

func TestCreateDocumentAdminUploadsArePublic(t *testing.T) {
	docRepo := new(mocks.DocumentRepositoryMock)
	handler := NewDocumentHandler(docRepo, nil)
	router := setupDocumentRouter(handler, models.RoleAdmin)

	docRepo.On("CreateDocument", mock.Anything, mock.MatchedBy(func(d models.Document) bool {
		return d.PresID == "pres1" && d.IsPublic
	})).Return(models.Document{ID: 3, PresID: "pres1", IsPublic: true}, nil).Once()

	body := bytes.NewBufferString(`{"pres_id":"pres1","filename":"deck.pptx"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/document/create", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	docRepo.AssertExpectations(t)
}

func TestCreateDocumentUserUploadsArePrivate(t *testing.T) {
	docRepo := new(mocks.DocumentRepositoryMock)
	handler := NewDocumentHandler(docRepo, nil)
	router := setupDocumentRouter(handler, models.RoleUser)

	docRepo.On("CreateDocument", mock.Anything, mock.MatchedBy(func(d models.Document) bool {
		return !d.IsPublic && d.UserID == 1
	})).Return(models.Document{ID: 3, PresID: "pres1"}, nil).Once()

	body := bytes.NewBufferString(`{"pres_id":"pres1","filename":"deck.pptx"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/document/create", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	docRepo.AssertExpectations(t)
}

func TestCreateDocumentDuplicate(t *testing.T) {
	docRepo := new(mocks.DocumentRepositoryMock)
	handler := NewDocumentHandler(docRepo, nil)
	router := setupDocumentRouter(handler, models.RoleUser)

	docRepo.On("CreateDocument", mock.Anything, mock.Anything).
		Return(models.Document{}, repositories.ErrDocumentExists).Once()

	body := bytes.NewBufferString(`{"pres_id":"pres1","filename":"deck.pptx"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/document/create", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	docRepo.AssertExpectations(t)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	docRepo := new(mocks.DocumentRepositoryMock)
	handler := NewDocumentHandler(docRepo, nil)
	router := setupDocumentRouter(handler, models.RoleUser)

	docRepo.On("DeleteDocument", mock.Anything, "ghost", 1).
		Return(repositories.ErrDocumentNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/document/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	docRepo.AssertExpectations(t)
}
