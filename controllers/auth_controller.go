package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "payload inválido", nil)
		return
	}

	var u models.Usuario
	if err := config.DB.Where("email = ? AND activo = true", strings.ToLower(strings.TrimSpace(in.Email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusUnauthorized, "Credenciales inválidas", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar usuario", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "Credenciales inválidas", nil)
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Nombre, u.Rol, u.Agencia)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo generar el token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"usuario": gin.H{
			"id":      u.ID,
			"email":   u.Email,
			"nombre":  u.Nombre,
			"rol":     u.Rol,
			"agencia": u.Agencia,
		},
	})
}

type RegistrarUsuarioInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nombre   string `json:"nombre" binding:"required"`
	Rol      string `json:"rol"`
}

// RegistrarUsuario crea un operador nuevo dentro de la agencia (solo ADMIN).
func RegistrarUsuario(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var in RegistrarUsuarioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "payload inválido", err)
		return
	}

	rol := in.Rol
	if rol == "" {
		rol = "OPERADOR"
	}
	if rol != "ADMIN" && rol != "OPERADOR" {
		utils.Error(c, http.StatusBadRequest, "rol inválido (ADMIN/OPERADOR)", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo hashear el password", err)
		return
	}

	u := models.Usuario{
		Agencia:  agencia,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Nombre:   strings.TrimSpace(in.Nombre),
		Rol:      rol,
		Activo:   true,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		if esViolacionUnique(err) {
			utils.Error(c, http.StatusConflict, "Ya existe un usuario con ese email", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear el usuario", err)
		return
	}

	utils.Created(c, "Usuario registrado", u)
}

func Perfil(c *gin.Context) {
	uid, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var u models.Usuario
	if err := config.DB.Where("id = ? AND agencia = ?", uid, agencia).First(&u).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Usuario no encontrado", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}
