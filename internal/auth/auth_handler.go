package auth

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	platform "go-hrms/internal/shared/request"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const RefreshTokenCookie = "refresh_token"

type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	service Service
	cookies CookieConfig
	logger  *zap.Logger
}

func NewHandler(s Service, cookies CookieConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookies: cookies, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	access, refresh, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setCookie(c, middleware.AccessTokenCookie, access, h.cookies.AccessTTL)
	if h.isWeb(c) {
		h.setCookie(c, RefreshTokenCookie, refresh, h.cookies.RefreshTTL)
	}

	response.Success(c, http.StatusOK, LoginResponse{
		AuthResponse: user,
		Token:        access,
		RefreshToken: refresh,
	}, nil)
}

// RefreshToken reads the token from the JSON body, falling back to the
// refresh cookie for browser clients.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
			token = cookie
		}
	}
	if token == "" {
		h.writeError(c, autherrors.ErrMissingRefreshToken)
		return
	}

	access, refresh, user, err := h.service.RefreshToken(c.Request.Context(), token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setCookie(c, middleware.AccessTokenCookie, access, h.cookies.AccessTTL)
	if h.isWeb(c) {
		h.setCookie(c, RefreshTokenCookie, refresh, h.cookies.RefreshTTL)
	}

	response.Success(c, http.StatusOK, LoginResponse{
		AuthResponse: user,
		Token:        access,
		RefreshToken: refresh,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.writeError(c, apperror.ErrUnauthorized)
		return
	}

	me, err := h.service.GetMe(c.Request.Context(), principal.IdentityID.String())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", -1)
	h.setCookie(c, RefreshTokenCookie, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) isWeb(c *gin.Context) bool {
	return platform.IsWebClient(platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

// setCookie clears the cookie when ttl is negative.
func (h *Handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
