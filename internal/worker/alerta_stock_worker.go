package worker

// alerta_stock_worker.go
// Processes low-stock alert jobs enqueued after a sale finalization leaves
// one or more insumos at or below their minimum. Mails a summary to the
// configured alert address; SMTP calls run behind the circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iangusi/cafeteria-admin/internal/infra"
	"github.com/iangusi/cafeteria-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is the job envelope sent to QueueAlertaStock.
type AlertaStockPayload struct {
	VentaID   string   `json:"venta_id"`
	InsumoIDs []string `json:"insumo_ids"`
}

type AlertaStockWorker struct {
	repo       repository.InsumoRepository
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	rdb        *redis.Client
	alertEmail string
}

func NewAlertaStockWorker(repo repository.InsumoRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client, alertEmail string) *AlertaStockWorker {
	return &AlertaStockWorker{repo: repo, mailer: mailer, cb: cb, rdb: rdb, alertEmail: alertEmail}
}

// Process re-reads each insumo (stock may have moved since the sale) and
// mails one summary line per insumo still at or below its minimum.
func (w *AlertaStockWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_stock: invalid payload")
		return
	}
	if w.alertEmail == "" {
		log.Warn().Msg("alerta_stock: no alert email configured — skipping")
		return
	}

	var lineas []string
	for _, idStr := range payload.InsumoIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		insumo, err := w.repo.FindByID(ctx, id)
		if err != nil {
			continue
		}
		if !insumo.EstaBajoStock() {
			continue // replenished since the sale
		}
		lineas = append(lineas, fmt.Sprintf("- %s: %s %s (mínimo %s)",
			insumo.Nombre, insumo.Cantidad.String(), insumo.Unidad, insumo.CantidadMin.String()))
	}
	if len(lineas) == 0 {
		return
	}

	subject := fmt.Sprintf("Alerta de stock bajo (%d insumos)", len(lineas))
	body := "Los siguientes insumos quedaron en o por debajo de su mínimo:\n\n" +
		strings.Join(lineas, "\n")

	err := w.cb.Execute(func() error {
		return w.mailer.Send(w.alertEmail, subject, body)
	})
	if err != nil {
		log.Error().Err(err).Msg("alerta_stock: failed to send alert email")
		SendToDLQ(ctx, w.rdb, QueueAlertaStock, "alerta_stock", raw, err.Error(), 1)
		return
	}
	log.Info().Int("insumos", len(lineas)).Msg("alerta_stock: alert sent")
}
