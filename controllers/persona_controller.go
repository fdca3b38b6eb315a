package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/avidela47/SS-BienesRaices-sub000/config"
	"github.com/avidela47/SS-BienesRaices-sub000/models"
	"github.com/avidela47/SS-BienesRaices-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func tipoPersonaValido(t models.TipoPersona) bool {
	switch t {
	case models.PersonaInquilino, models.PersonaPropietario, models.PersonaGarante, models.PersonaOtro:
		return true
	}
	return false
}

// GET /personas?tipo=&q=
func GetAllPersonas(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var rows []models.Persona
	q := config.DB.Where("agencia = ?", agencia).Order("nombre ASC, id ASC")

	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if s := c.Query("q"); s != "" {
		like := "%" + s + "%"
		q = q.Where("nombre ILIKE ? OR documento ILIKE ?", like, like)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar personas", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func GetPersonaByID(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var p models.Persona
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Persona no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar persona", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

type PersonaInput struct {
	Tipo      string `json:"tipo" binding:"required"`
	Nombre    string `json:"nombre" binding:"required"`
	Documento string `json:"documento"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Notas     string `json:"notas"`
}

func CreatePersona(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var in PersonaInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Nombre) == "" {
		utils.Error(c, http.StatusBadRequest, "payload inválido", nil)
		return
	}
	if !tipoPersonaValido(models.TipoPersona(in.Tipo)) {
		utils.Error(c, http.StatusBadRequest, "tipo inválido (INQUILINO/PROPIETARIO/GARANTE/OTRO)", nil)
		return
	}

	p := models.Persona{
		Agencia:   agencia,
		Tipo:      models.TipoPersona(in.Tipo),
		Nombre:    strings.TrimSpace(in.Nombre),
		Documento: strings.TrimSpace(in.Documento),
		Email:     strings.TrimSpace(in.Email),
		Telefono:  strings.TrimSpace(in.Telefono),
		Direccion: strings.TrimSpace(in.Direccion),
		Notas:     in.Notas,
		Activo:    true,
	}
	if err := config.DB.Create(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear la persona", err)
		return
	}
	utils.Created(c, "Persona creada", p)
}

func UpdatePersona(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var p models.Persona
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Persona no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar persona", err)
		return
	}

	var in PersonaInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Nombre) == "" {
		utils.Error(c, http.StatusBadRequest, "payload inválido", nil)
		return
	}
	if !tipoPersonaValido(models.TipoPersona(in.Tipo)) {
		utils.Error(c, http.StatusBadRequest, "tipo inválido (INQUILINO/PROPIETARIO/GARANTE/OTRO)", nil)
		return
	}

	p.Tipo = models.TipoPersona(in.Tipo)
	p.Nombre = strings.TrimSpace(in.Nombre)
	p.Documento = strings.TrimSpace(in.Documento)
	p.Email = strings.TrimSpace(in.Email)
	p.Telefono = strings.TrimSpace(in.Telefono)
	p.Direccion = strings.TrimSpace(in.Direccion)
	p.Notas = in.Notas

	if err := config.DB.Save(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar la persona", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func DeletePersona(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var p models.Persona
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Persona no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar persona", err)
		return
	}

	// no se borra si algún contrato la referencia
	var cnt int64
	config.DB.Model(&models.Contrato{}).
		Where("agencia = ? AND (propietario_id = ? OR inquilino_id = ? OR garante_id = ?)", agencia, p.ID, p.ID, p.ID).
		Count(&cnt)
	if cnt > 0 {
		utils.Error(c, http.StatusConflict, "La persona tiene contratos asociados", nil)
		return
	}

	if err := config.DB.Delete(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo borrar la persona", err)
		return
	}
	utils.Success(c, "Persona borrada", nil)
}
