package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/internal/db"
	"github.com/batiplan/batiplan/server/common"
)

// Auth validates the session bearer token and stores the user in the request
// context under conf.UserKey.
func Auth(c *gin.Context) {
	token := c.GetHeader("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		common.ErrorStrResp(c, "session required", 401)
		return
	}
	claims, err := common.ParseToken(token)
	if err != nil {
		common.ErrorResp(c, err, 401)
		return
	}
	user, err := db.GetUserByID(claims.UID)
	if err != nil {
		common.ErrorStrResp(c, "session user not found", 401)
		return
	}
	if user.Disabled {
		common.ErrorStrResp(c, "account disabled", 403)
		return
	}
	ctx := context.WithValue(c.Request.Context(), conf.UserKey, user)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
