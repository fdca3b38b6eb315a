package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sobre estándar de la API: {message, data} en éxito, {message, error} en falla.

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"message": message, "data": data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "data": data})
}

func Error(c *gin.Context, status int, message string, err error) {
	resp := gin.H{"message": message}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(status, resp)
}
