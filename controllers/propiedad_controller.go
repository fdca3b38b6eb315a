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

// GET /propiedades?estado=&q=
func GetAllPropiedades(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var rows []models.Propiedad
	q := config.DB.Where("agencia = ?", agencia).Order("codigo ASC, id ASC")

	if estado := c.Query("estado"); estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if s := c.Query("q"); s != "" {
		like := "%" + s + "%"
		q = q.Where("codigo ILIKE ? OR direccion ILIKE ?", like, like)
	}

	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al listar propiedades", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func GetPropiedadByID(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var p models.Propiedad
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Propiedad no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar propiedad", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

type PropiedadInput struct {
	Codigo        string `json:"codigo" binding:"required"`
	Direccion     string `json:"direccion" binding:"required"`
	Tipo          string `json:"tipo"`
	Ambientes     int    `json:"ambientes"`
	PropietarioID uint   `json:"propietario_id" binding:"required"`
	Notas         string `json:"notas"`
}

func CreatePropiedad(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var in PropiedadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "payload inválido", err)
		return
	}

	// el propietario tiene que existir en la agencia
	var dueno models.Persona
	if err := config.DB.Where("id = ? AND agencia = ?", in.PropietarioID, agencia).First(&dueno).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Propietario no encontrado", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar propietario", err)
		return
	}

	p := models.Propiedad{
		Agencia:       agencia,
		Codigo:        strings.TrimSpace(in.Codigo),
		Direccion:     strings.TrimSpace(in.Direccion),
		Tipo:          strings.TrimSpace(in.Tipo),
		Ambientes:     in.Ambientes,
		Estado:        models.PropiedadDisponible,
		PropietarioID: in.PropietarioID,
		Notas:         in.Notas,
	}
	if err := config.DB.Create(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo crear la propiedad", err)
		return
	}
	utils.Created(c, "Propiedad creada", p)
}

type PropiedadUpdateInput struct {
	Direccion string `json:"direccion"`
	Tipo      string `json:"tipo"`
	Ambientes *int   `json:"ambientes"`
	Notas     *string `json:"notas"`
	// solo para marcar/desmarcar mantenimiento; RENTED/AVAILABLE los maneja
	// el sincronizador de contratos
	Mantenimiento *bool `json:"mantenimiento"`
}

func UpdatePropiedad(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var p models.Propiedad
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Propiedad no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar propiedad", err)
		return
	}

	var in PropiedadUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "payload inválido", err)
		return
	}

	if in.Direccion != "" {
		p.Direccion = strings.TrimSpace(in.Direccion)
	}
	if in.Tipo != "" {
		p.Tipo = strings.TrimSpace(in.Tipo)
	}
	if in.Ambientes != nil {
		p.Ambientes = *in.Ambientes
	}
	if in.Notas != nil {
		p.Notas = *in.Notas
	}
	if in.Mantenimiento != nil {
		if *in.Mantenimiento {
			if p.Estado == models.PropiedadAlquilada {
				utils.Error(c, http.StatusConflict, "La propiedad está alquilada", nil)
				return
			}
			p.Estado = models.PropiedadMantenimiento
		} else if p.Estado == models.PropiedadMantenimiento {
			p.Estado = models.PropiedadDisponible
		}
	}

	if err := config.DB.Save(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo actualizar la propiedad", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func DeletePropiedad(c *gin.Context) {
	_, agencia, err := currentUsuario(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var p models.Propiedad
	if err := config.DB.Where("id = ? AND agencia = ?", id, agencia).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Propiedad no encontrada", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Error al buscar propiedad", err)
		return
	}

	var cnt int64
	config.DB.Model(&models.Contrato{}).
		Where("agencia = ? AND propiedad_id = ?", agencia, p.ID).
		Count(&cnt)
	if cnt > 0 {
		utils.Error(c, http.StatusConflict, "La propiedad tiene contratos asociados", nil)
		return
	}

	if err := config.DB.Delete(&p).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo borrar la propiedad", err)
		return
	}
	utils.Success(c, "Propiedad borrada", nil)
}
