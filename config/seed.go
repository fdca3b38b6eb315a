package config

import (
	"log"
	"os"

	"github.com/avidela47/SS-BienesRaices-sub000/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedUsuarioAdmin crea el usuario administrador inicial si no existe ninguno.
func SeedUsuarioAdmin() {
	var cnt int64
	DB.Model(&models.Usuario{}).Count(&cnt)
	if cnt > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@bienesraices.local"
	}
	pass := os.Getenv("ADMIN_PASSWORD")
	if pass == "" {
		pass = "cambiar123"
	}
	agencia := os.Getenv("AGENCIA")
	if agencia == "" {
		agencia = "sub000"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️  No se pudo hashear password del admin: %v", err)
		return
	}

	u := models.Usuario{
		Agencia:  agencia,
		Email:    email,
		Password: string(hash),
		Nombre:   "Administrador",
		Rol:      "ADMIN",
		Activo:   true,
	}
	if err := DB.Create(&u).Error; err != nil {
		log.Printf("⚠️  No se pudo crear el admin inicial: %v", err)
		return
	}
	log.Printf("✅ Admin inicial creado: %s (agencia %s)", email, agencia)
}
