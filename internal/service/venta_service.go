package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/repository"
	"github.com/iangusi/cafeteria-admin/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrVentaNoModificable rejects any mutation of a sale that already left the
// pending state. Handlers map it to 409.
var ErrVentaNoModificable = errors.New("la venta ya fue finalizada y no admite cambios")

type VentaService interface {
	Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)

	AgregarItem(ctx context.Context, ventaID uuid.UUID, req dto.ItemVentaRequest) (*dto.VentaResponse, error)
	ActualizarItem(ctx context.Context, ventaID, itemID uuid.UUID, req dto.ActualizarItemRequest) (*dto.VentaResponse, error)
	EliminarItem(ctx context.Context, ventaID, itemID uuid.UUID) (*dto.VentaResponse, error)

	// Finalizar closes the sale: freezes totals, redeems and awards points,
	// deducts ingredient stock. All or nothing.
	Finalizar(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	// Cancelar deletes a pending sale together with its items.
	Cancelar(ctx context.Context, id uuid.UUID) error
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	insumoRepo   repository.InsumoRepository
	clienteRepo  repository.ClienteRepository
	dispatcher   *worker.Dispatcher
	reloj        Reloj
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	insumoRepo repository.InsumoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
	reloj Reloj,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		insumoRepo:   insumoRepo,
		clienteRepo:  clienteRepo,
		dispatcher:   dispatcher,
		reloj:        reloj,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func mapVenta(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for i := range v.Items {
		it := &v.Items[i]
		nombre := ""
		if it.Producto != nil {
			nombre = it.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ID:       it.ID.String(),
			Producto: nombre,
			Cantidad: it.Cantidad,
			Precio:   it.Precio,
			Subtotal: it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))),
		})
	}
	var clienteID, clienteNombre *string
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		clienteID = &id
	}
	if v.Cliente != nil {
		clienteNombre = &v.Cliente.Nombre
	}
	return &dto.VentaResponse{
		ID:           v.ID.String(),
		Titulo:       v.Titulo,
		ClienteID:    clienteID,
		Cliente:      clienteNombre,
		Fecha:        v.Fecha.Format("2006-01-02"),
		Estado:       v.Estado,
		Items:        items,
		PrecioTotal:  v.PrecioTotalCache,
		CostoTotal:   v.CostoTotalCache,
		PuntosUsados: v.PuntosUsados,
		PrecioFinal:  v.PrecioFinal(),
	}
}

func (s *ventaService) Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errors.New("cliente_id inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, id); err != nil {
			return nil, errors.New("cliente no encontrado")
		}
		clienteID = &id
	}

	fecha := s.reloj.Ahora().Truncate(24 * time.Hour)
	if req.Fecha != "" {
		f, err := time.Parse("2006-01-02", req.Fecha)
		if err != nil {
			return nil, errors.New("fecha inválida")
		}
		fecha = f
	}

	v := &model.Venta{
		Titulo:    req.Titulo,
		ClienteID: clienteID,
		Estado:    model.VentaPendiente,
		Fecha:     fecha,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return mapVenta(v), nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Display totals reflect the current items for pending sales. When a
	// recipe can no longer convert (an insumo's stock unit changed under
	// it) the read serves the cached totals instead of failing; the
	// conflict surfaces on finalize.
	if v.PuedeModificar() {
		if _, _, err := v.CalcularTotales(); err != nil && !errors.Is(err, model.ErrUnidadesIncompatibles) {
			return nil, err
		}
	}
	return mapVenta(v), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = "all"
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *mapVenta(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ventaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.PuedeModificar() {
		return nil, ErrVentaNoModificable
	}

	if req.Titulo != nil {
		v.Titulo = *req.Titulo
	}
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errors.New("cliente_id inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("cliente no encontrado")
		}
		v.ClienteID = &cid
		v.Cliente = nil
	}
	if req.Fecha != nil {
		f, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, errors.New("fecha inválida")
		}
		v.Fecha = f
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *ventaService) AgregarItem(ctx context.Context, ventaID uuid.UUID, req dto.ItemVentaRequest) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if !v.PuedeModificar() {
		return nil, ErrVentaNoModificable
	}

	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, errors.New("producto_id inválido")
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if !p.Activo {
		return nil, fmt.Errorf("el producto %s está inactivo y no puede venderse", p.Nombre)
	}

	// Precio snapshot: later price changes never touch recorded lines
	it := &model.VentaItem{
		VentaID:    ventaID,
		ProductoID: &pid,
		Precio:     p.PrecioVenta,
		Cantidad:   req.Cantidad,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return s.recalcular(ctx, ventaID)
}

func (s *ventaService) ActualizarItem(ctx context.Context, ventaID, itemID uuid.UUID, req dto.ActualizarItemRequest) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if !v.PuedeModificar() {
		return nil, ErrVentaNoModificable
	}

	it, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.VentaID != ventaID {
		return nil, gorm.ErrRecordNotFound
	}

	it.Cantidad = req.Cantidad
	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return s.recalcular(ctx, ventaID)
}

func (s *ventaService) EliminarItem(ctx context.Context, ventaID, itemID uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if !v.PuedeModificar() {
		return nil, ErrVentaNoModificable
	}

	it, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.VentaID != ventaID {
		return nil, gorm.ErrRecordNotFound
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.recalcular(ctx, ventaID)
}

// recalcular refreshes the cached totals after an item mutation.
func (s *ventaService) recalcular(ctx context.Context, ventaID uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if _, _, err := v.CalcularTotales(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	return mapVenta(v), nil
}

// ── Finalizar ─────────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. Lock the sale row; reject anything not pending
//   2. Recompute both totals from the items
//   3. Redeem points automatically: min(saldo, floor(precio total))
//   4. Deduct ingredient stock per recipe line, units converted into each
//      insumo's stock unit. Stock may go negative — overdraft over blocking.
//   5. Update customer balance: subtract redeemed (floor 0), add earned
//   6. Mark finalizada
// After commit: enqueue a low-stock alert for insumos at/below minimum.

func (s *ventaService) Finalizar(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	var venta *model.Venta
	var bajos []string

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDTx(tx, id, true)
		if err != nil {
			return err
		}
		if !v.PuedeModificar() {
			return ErrVentaNoModificable
		}

		if _, _, err := v.CalcularTotales(); err != nil {
			return err
		}

		var cliente *model.Cliente
		if v.ClienteID != nil {
			cliente, err = s.clienteRepo.FindByIDTx(tx, *v.ClienteID, true)
			if err != nil {
				return err
			}
		}

		// Redemption is automatic: whatever balance the customer holds is
		// applied against the total, capped at floor(precio total).
		v.PuntosUsados = 0
		if cliente != nil {
			v.PuntosUsados = v.PuntosARedimir(cliente.Puntos)
		}

		// Deduct stock line by line, in each insumo's own stock unit,
		// rounding the running balance to 2 decimals after every recipe
		// line — the stock ledger moves one ticket entry at a time, not
		// as one netted batch. Incompatible units abort the whole
		// finalization.
		var orden []uuid.UUID
		saldos := make(map[uuid.UUID]decimal.Decimal)
		minimos := make(map[uuid.UUID]decimal.Decimal)
		for i := range v.Items {
			it := &v.Items[i]
			if it.Producto == nil {
				continue
			}
			factor := decimal.NewFromInt(int64(it.Cantidad))
			for j := range it.Producto.RecetaItems {
				pr := &it.Producto.RecetaItems[j]
				equiv, err := pr.CantidadEquivalente()
				if err != nil {
					return err
				}
				if _, ok := saldos[pr.InsumoID]; !ok {
					insumo, err := s.insumoRepo.FindByIDTx(tx, pr.InsumoID, true)
					if err != nil {
						return err
					}
					orden = append(orden, pr.InsumoID)
					saldos[pr.InsumoID] = insumo.Cantidad
					minimos[pr.InsumoID] = insumo.CantidadMin
				}
				saldos[pr.InsumoID] = saldos[pr.InsumoID].Sub(equiv.Mul(factor)).Round(2)
			}
		}

		for _, insumoID := range orden {
			if err := s.insumoRepo.UpdateCantidadTx(tx, insumoID, saldos[insumoID]); err != nil {
				return err
			}
			if saldos[insumoID].LessThanOrEqual(minimos[insumoID]) {
				bajos = append(bajos, insumoID.String())
			}
		}

		if cliente != nil {
			saldo := cliente.Puntos - v.PuntosUsados
			if saldo < 0 {
				saldo = 0
			}
			saldo += v.PuntosAGanar()
			if err := s.clienteRepo.UpdatePuntosTx(tx, cliente.ID, saldo); err != nil {
				return err
			}
		}

		v.Estado = model.VentaFinalizada
		if err := s.repo.SaveTx(tx, v); err != nil {
			return err
		}
		venta = v
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best effort — a lost alert never rolls back a sale
	if s.dispatcher != nil && len(bajos) > 0 {
		_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
			VentaID:   venta.ID.String(),
			InsumoIDs: bajos,
		})
	}

	return mapVenta(venta), nil
}

// Cancelar deletes a pending sale and its items in one transaction. The
// cascade is an explicit rule here, not a DB constraint. Finalized sales
// are immutable history and cannot be cancelled.
func (s *ventaService) Cancelar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.repo.FindByIDTx(tx, id, true)
		if err != nil {
			return err
		}
		if !v.PuedeModificar() {
			return ErrVentaNoModificable
		}
		return s.repo.DeleteConItemsTx(tx, id)
	})
}
