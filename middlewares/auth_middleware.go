package middlewares

import (
	"net/http"
	"strings"

	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Falta el token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		// los números JWT llegan como float64
		uid, _ := claims["usuario_id"].(float64)
		agencia, _ := claims["agencia"].(string)
		if uid == 0 || agencia == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		c.Set("usuario_id", uint(uid))
		c.Set("nombre", claims["nombre"])
		c.Set("rol", claims["rol"])
		c.Set("agencia", agencia)
		c.Next()
	}
}

// AdminOnly exige rol ADMIN; va encadenado después de AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, _ := c.Get("rol")
		if rol != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Requiere rol ADMIN"})
			c.Abort()
			return
		}
		c.Next()
	}
}
