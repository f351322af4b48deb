package handler

import (
	"net/http"

	"github.com/iangusi/cafeteria-admin/internal/apierror"
	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AsistenciasHandler struct{ svc service.AsistenciaService }

func NewAsistenciasHandler(svc service.AsistenciaService) *AsistenciasHandler {
	return &AsistenciasHandler{svc: svc}
}

// Marcar godoc
// @Summary      Marcar entrada o salida
// @Description  Terminal compartida: el empleado se identifica con correo y contraseña e indica el tipo de marca (entrada o salida). Cada marca se registra una sola vez por día.
// @Tags         asistencias
// @Accept       json
// @Produce      json
// @Param        body body dto.MarcarAsistenciaRequest true "Credenciales"
// @Success      200 {object} dto.MarcarAsistenciaResponse
// @Failure      401 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/asistencias/marcar [post]
func (h *AsistenciasHandler) Marcar(c *gin.Context) {
	var req dto.MarcarAsistenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Marcar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AsistenciasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Asistencia no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AsistenciasHandler) ListarPorEmpleado(c *gin.Context) {
	empleadoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	desde, hasta, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorRango(c.Request.Context(), empleadoID, desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar asistencias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AsistenciasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarAsistenciaRequest
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

func (h *AsistenciasHandler) Eliminar(c *gin.Context) {
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
