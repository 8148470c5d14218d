package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		rid := contextutil.GetRequestID(c.Request.Context())
		assert.NotEmpty(t, rid)
		assert.Equal(t, rid, c.GetString(middleware.KeyRequestID))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimitByUser_SeparateBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set(middleware.KeyUserID, c.Query("u")) },
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	codes := make([]int, 0, 3)
	for _, u := range []string{"a", "a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?u="+u, nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
}

func TestIdempotency_StoresFirstResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	body := `{"ok":true}`
	cacheKey := middleware.IdempotencyCacheKey("/leave/apply", "user-1", "k1")
	payload, err := json.Marshal(map[string]any{
		"status":       http.StatusCreated,
		"content_type": "application/json",
		"body":         []byte(body),
	})
	require.NoError(t, err)

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "1", 30*time.Second).SetVal(true)
	mock.ExpectSet(cacheKey, string(payload), 24*time.Hour).SetVal("OK")
	mock.ExpectDel(cacheKey + ":lock").SetVal(1)

	r := gin.New()
	r.POST("/leave/apply",
		func(c *gin.Context) { c.Set(middleware.KeyUserID, "user-1") },
		middleware.Idempotency(db),
		func(c *gin.Context) { c.Data(http.StatusCreated, "application/json", []byte(body)) },
	)

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	cacheKey := middleware.IdempotencyCacheKey("/leave/apply", "", "k2")
	payload, _ := json.Marshal(map[string]any{
		"status":       http.StatusCreated,
		"content_type": "application/json",
		"body":         []byte(`{"ok":true,"data":{"id":"x"}}`),
	})
	mock.ExpectGet(cacheKey).SetVal(string(payload))

	r := gin.New()
	r.POST("/leave/apply", middleware.Idempotency(db), func(c *gin.Context) {
		t.Fatal("handler must not run on replay")
	})

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get(middleware.HeaderReplayed))
	assert.JSONEq(t, `{"ok":true,"data":{"id":"x"}}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	cacheKey := middleware.IdempotencyCacheKey("/leave/apply", "", "k3")
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "1", 30*time.Second).SetVal(false)

	r := gin.New()
	r.POST("/leave/apply", middleware.Idempotency(db), func(c *gin.Context) {
		t.Fatal("handler must not run while locked")
	})

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReleasesLockWhenHandlerPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	cacheKey := middleware.IdempotencyCacheKey("/leave/apply", "", "k4")
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "1", 30*time.Second).SetVal(true)
	mock.ExpectDel(cacheKey + ":lock").SetVal(1)

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/leave/apply", middleware.Idempotency(db), func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k4")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/leave/apply", middleware.Idempotency(db), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave/apply", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
