package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/apierror"
	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const costoCacheTTL = 15 * time.Minute

// ConsultaCostosHandler serves the product costing lookup. Recipe costing
// walks every line with a unit conversion each time, so results are cached
// in Redis for a short window; any ingredient price edit within the TTL is
// at most 15 minutes stale on this read path.
type ConsultaCostosHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewConsultaCostosHandler(svc service.ProductoService, rdb *redis.Client) *ConsultaCostosHandler {
	return &ConsultaCostosHandler{svc: svc, rdb: rdb}
}

// GetCostos godoc
// @Summary Costos derivados de un producto (costo, margen, ganancia)
// @Tags productos
// @Produce json
// @Param id path string true "UUID del producto"
// @Success 200 {object} dto.ProductoCostosResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id}/costos [get]
func (h *ConsultaCostosHandler) GetCostos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "costos:" + id.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ProductoCostosResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — recompute from the current recipe
	resp, err := h.svc.ObtenerCostos(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, costoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
