package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthplus/clinic-api/notification"
)

// Context keys for handles injected by the middleware below.
const (
	dbContextKey       = "db"
	notifierContextKey = "notifier"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware makes the shared database handle available to handlers.
// The handle is constructed once in main and passed down explicitly; handlers
// retrieve it with GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the database handle injected by DatabaseMiddleware, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbContextKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}

// NotifierMiddleware makes the notification port available to handlers,
// mirroring how the database handle travels through the context.
func NotifierMiddleware(n notification.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(notifierContextKey, n)
		c.Next()
	}
}

// GetNotifier returns the notification port injected by NotifierMiddleware, or nil.
func GetNotifier(c *gin.Context) notification.Notifier {
	v, ok := c.Get(notifierContextKey)
	if !ok {
		return nil
	}
	n, _ := v.(notification.Notifier)
	return n
}
