package handles

import (
	"github.com/gin-gonic/gin"

	"github.com/batiplan/batiplan/internal/db"
	"github.com/batiplan/batiplan/server/common"
)

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	user, err := db.GetUserByUsername(req.Username)
	if err != nil || !user.ValidatePassword(req.Password) {
		common.ErrorStrResp(c, "username or password incorrect", 401)
		return
	}
	if user.Disabled {
		common.ErrorStrResp(c, "account disabled", 403)
		return
	}
	token, err := common.GenerateToken(user)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, gin.H{"token": token})
}
