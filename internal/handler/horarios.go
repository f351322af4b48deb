package handler

import (
	"net/http"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/apierror"
	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HorariosHandler struct{ svc service.HorarioService }

func NewHorariosHandler(svc service.HorarioService) *HorariosHandler {
	return &HorariosHandler{svc: svc}
}

func (h *HorariosHandler) Crear(c *gin.Context) {
	var req dto.CrearHorarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HorariosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Bloque no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HorariosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarHorarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HorariosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TableroSemana godoc
// @Summary      Tablero semanal de turnos
// @Description  Bloques de todos los empleados para la semana que contiene la fecha dada, agrupados por día y con su estado derivado.
// @Tags         horarios
// @Produce      json
// @Param        fecha query string false "YYYY-MM-DD (default: hoy)"
// @Success      200 {object} dto.TableroSemanaResponse
// @Router       /v1/horarios/tablero [get]
func (h *HorariosHandler) TableroSemana(c *gin.Context) {
	fecha := time.Now()
	if q := c.Query("fecha"); q != "" {
		f, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, formato YYYY-MM-DD"))
			return
		}
		fecha = f
	}
	resp, err := h.svc.TableroSemana(c.Request.Context(), fecha)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al armar el tablero"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
