package main

import (
	"log"
	"os"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/routes"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env para desarrollo local; en hosting las vars ya vienen seteadas
	if err := godotenv.Load(); err == nil {
		log.Println("Variables cargadas desde .env")
	}

	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.Usuario{},
		&models.Persona{},
		&models.Propiedad{},
		&models.Contrato{},
		&models.Cuota{},
		&models.Pago{},
		&models.MovimientoCaja{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate falló: %v", err)
	}

	config.SeedUsuarioAdmin()

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "🏠 SS Bienes Raíces API funcionando"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
