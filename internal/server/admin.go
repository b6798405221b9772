package server

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanimomor/portfolio/internal/config"
	"github.com/tanimomor/portfolio/internal/store"
)

const (
	adminCookie     = "admin_token"
	adminCookieAge  = 3600 * 24
	recentVisitors  = 200
	inboxPageLength = 100
)

// adminAuth holds the per-process admin session token and the salt used to
// hash visitor IPs. Both are regenerated on every start.
type adminAuth struct {
	username string
	password string
	token    string
	salt     string
}

func newAdminAuth(cfg config.Config, logger *zap.Logger) (*adminAuth, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	salt, err := generateToken()
	if err != nil {
		return nil, err
	}
	a := &adminAuth{username: cfg.AdminUsername, password: cfg.AdminPassword, token: token, salt: salt}

	// Development fallback; release builds stay locked without credentials.
	if gin.Mode() == gin.DebugMode {
		if a.username == "" {
			a.username = "admin"
			logger.Warn("Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
		if a.password == "" {
			a.password = "admin123"
			logger.Warn("Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	} else if a.username == "" || a.password == "" {
		logger.Warn("Admin login disabled: ADMIN_USERNAME and ADMIN_PASSWORD are not set")
	}
	return a, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP is stable per IP for the life of the process.
func (a *adminAuth) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *adminAuth) login(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":   "Privacy Policy",
			"catalog": s.catalog,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if s.admin.login(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, s.admin.token, adminCookieAge, "/admin", "", false, true)
			s.logger.Info("Admin login successful", zap.String("client", s.admin.hashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		s.logger.Warn("Failed admin login attempt", zap.String("client", s.admin.hashIP(c.ClientIP())))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(s.admin.middleware())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			s.adminError(c, "Failed to load statistics", err)
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/messages", func(c *gin.Context) {
		msgs, err := s.store.Messages(c.Request.Context(), inboxPageLength)
		if err != nil {
			s.adminError(c, "Failed to load messages", err)
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": msgs})
	})

	g.DELETE("/messages/:id", func(c *gin.Context) {
		id := c.Param("id")
		err := s.store.DeleteMessage(c.Request.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(c, http.StatusNotFound, "Message not found")
			return
		case err != nil:
			s.logger.Error("Error deleting message", zap.String("id", id), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to delete message")
			return
		}
		s.logger.Info("Message deleted by admin", zap.String("id", id))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	g.GET("/visitors", func(c *gin.Context) {
		visits, err := s.store.RecentVisits(c.Request.Context(), recentVisitors)
		if err != nil {
			s.adminError(c, "Failed to load visitors", err)
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visits})
	})

	g.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		n := s.purgeOldVisits(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("Admin stats exported", zap.String("client", s.admin.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}

func (s *Server) adminError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": msg})
}
