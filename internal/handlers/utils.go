package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPUserInfo struct {
	UserID string
	Mobile string
}

func ExtractUserInfo(c *gin.Context) (HTTPUserInfo, bool) {
	userID := c.GetString("userID") // From JWT middleware
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return HTTPUserInfo{}, false
	}
	return HTTPUserInfo{
		UserID: userID,
		Mobile: c.GetString("mobile"),
	}, true
}
