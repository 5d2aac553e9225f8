package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context, backend string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": backend,
	})
}
