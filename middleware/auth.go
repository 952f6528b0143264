package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthplus/clinic-api/util"
)

const (
	userIDContextKey    = "user_id"
	userEmailContextKey = "user_email"
	userRoleContextKey  = "user_role"
)

// RequireAuth guards a route group with bearer-token authentication. A
// missing, malformed, expired or wrongly signed token aborts the request
// with 401; on success the token's identity claims are stored in the
// request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Authorization token required",
				Err: fmt.Errorf("missing authorization header"),
			})
			c.Abort()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Authorization token required",
				Err: fmt.Errorf("malformed authorization header"),
			})
			c.Abort()
			return
		}

		claims, err := util.ParseLoginToken(raw)
		if err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired token",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Set(userEmailContextKey, claims.Email)
		c.Set(userRoleContextKey, claims.Role)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetUserRole returns the authenticated user's role from the request context.
func GetUserRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(userRoleContextKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
