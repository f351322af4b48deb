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

type EmpleadosHandler struct{ svc service.EmpleadoService }

func NewEmpleadosHandler(svc service.EmpleadoService) *EmpleadosHandler {
	return &EmpleadosHandler{svc: svc}
}

func (h *EmpleadosHandler) Crear(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
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

func (h *EmpleadosHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar empleados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmpleadosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Empleado no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmpleadosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarEmpleadoRequest
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

func (h *EmpleadosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EmpleadosHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// rangoFechas binds and parses the desde/hasta query pair.
func rangoFechas(c *gin.Context) (time.Time, time.Time, bool) {
	var filter dto.ResumenHorasFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return time.Time{}, time.Time{}, false
	}
	desde, err := time.Parse("2006-01-02", filter.Desde)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde invalido, formato YYYY-MM-DD"))
		return time.Time{}, time.Time{}, false
	}
	hasta := desde
	if filter.Hasta != "" {
		hasta, err = time.Parse("2006-01-02", filter.Hasta)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta invalido, formato YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
	}
	return desde, hasta, true
}

// ResumenHoras godoc
// @Summary      Horas asignadas, trabajadas y pago del período
// @Tags         empleados
// @Produce      json
// @Param        id    path  string true  "UUID del empleado"
// @Param        desde query string true  "YYYY-MM-DD"
// @Param        hasta query string false "YYYY-MM-DD (default: igual a desde)"
// @Success      200 {object} dto.ResumenHorasResponse
// @Router       /v1/empleados/{id}/horas [get]
func (h *EmpleadosHandler) ResumenHoras(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenHoras(c.Request.Context(), id, desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerarRecibo writes the pay-stub PDF to disk and returns its path.
func (h *EmpleadosHandler) GenerarRecibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	path, err := h.svc.GenerarRecibo(c.Request.Context(), id, desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pdf_path": path})
}
