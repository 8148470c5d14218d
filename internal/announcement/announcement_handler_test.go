package announcement_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/announcement"
	announcementerrors "go-hrms/internal/announcement/errors"
	announcementMock "go-hrms/internal/announcement/mock"
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc announcement.Service, caller *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	if caller != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.KeyPrincipal, *caller)
			c.Next()
		})
	}
	h := announcement.NewHandler(svc)
	r.GET("/announcements", h.GetAll)
	r.POST("/announcements", h.Create)
	r.DELETE("/announcements/:id", h.Delete)
	return r
}

func TestAnnouncementHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := announcementMock.NewMockService(ctrl)
	svc.EXPECT().GetAll(gomock.Any(), announcement.ListParams{Page: 2, Limit: 100, Audience: "IT"}).
		Return(announcement.ListResult{Items: []announcement.AnnouncementResponse{{ID: "a"}}, Total: 150}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/announcements?page=2&limit=500&audience=IT", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Meta struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, int64(150), body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func TestAnnouncementHandler_Create(t *testing.T) {
	caller := domain.Principal{IdentityID: uuid.New(), Role: domain.RoleHR}

	t.Run("created with author", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := announcementMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), caller, gomock.Any()).
			Return(announcement.AnnouncementResponse{ID: "a", Title: "Holiday"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/announcements", strings.NewReader(`{"title":"Holiday","content":"Closed"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &caller).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := announcementMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/announcements", strings.NewReader(`{"content":"Closed"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &caller).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Title is required")
	})

	t.Run("blank title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := announcementMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/announcements", strings.NewReader(`{"title":"   ","content":"Closed"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc, &caller).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Title is required")
	})
}

func TestAnnouncementHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := announcementMock.NewMockService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), "missing").Return("", announcementerrors.ErrAnnouncementNotFound)

	w := httptest.NewRecorder()
	setupRouter(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/announcements/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Announcement not found")
}
