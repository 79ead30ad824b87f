package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/http/middleware"
	"shuttle/internal/services"

	"github.com/gin-gonic/gin"
)

// Sessions live in process memory; a restart logs every admin out.
var (
	authMu     sync.RWMutex
	jwtSecret  = []byte("super-secret-key-change-me")
	sessionTTL = 8 * time.Hour
	sessions   = services.NewSessionStore()
)

// Configure applies the auth settings from env.
func Configure(env intconfig.Env) {
	authMu.Lock()
	defer authMu.Unlock()
	if env.JWTSecret != "" {
		jwtSecret = []byte(env.JWTSecret)
	}
	if env.SessionTTL > 0 {
		sessionTTL = env.SessionTTL
	}
}

func adminService(c *gin.Context) services.AdminService {
	authMu.RLock()
	defer authMu.RUnlock()
	svc := services.AdminService{
		Sessions: sessions,
		Secret:   jwtSecret,
		TTL:      sessionTTL,
	}
	if c != nil {
		svc.RequestID = middleware.GetRequestID(c)
	}
	return svc
}

// Authenticate resolves a bearer token for middleware.RequireAdmin.
func Authenticate(token string) (domain.Session, error) {
	return adminService(nil).Authenticate(token)
}

// BootstrapAdmin creates the first admin account when it is missing.
func BootstrapAdmin(ctx context.Context, username, password string) error {
	return adminService(nil).Bootstrap(ctx, username, password)
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/register
// Open until the first admin exists; afterwards an admin token is required.
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	admin, err := adminService(c).RegisterBy(c.Request.Context(), middleware.GetSession(c), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "admin berhasil didaftarkan",
		"admin":   admin,
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sess, token, err := adminService(c).Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"session":    sess,
		"username":   sess.Username,
		"expires_at": sess.ExpiresAt,
	})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	adminService(c).Logout(middleware.GetSession(c))
	c.JSON(http.StatusOK, gin.H{"message": "logout berhasil"})
}
