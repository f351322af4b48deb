package router

import (
	"time"

	"github.com/iangusi/cafeteria-admin/internal/config"
	"github.com/iangusi/cafeteria-admin/internal/handler"
	"github.com/iangusi/cafeteria-admin/internal/middleware"
	"github.com/iangusi/cafeteria-admin/internal/repository"
	"github.com/iangusi/cafeteria-admin/internal/service"
	"github.com/iangusi/cafeteria-admin/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	insumoRepo := repository.NewInsumoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	horarioRepo := repository.NewHorarioRepository(db)
	asistenciaRepo := repository.NewAsistenciaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	reloj := service.NewRelojSistema()

	// ── Services ─────────────────────────────────────────────────────────────
	insumoSvc := service.NewInsumoService(insumoRepo)
	productoSvc := service.NewProductoService(productoRepo, insumoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, insumoRepo, clienteRepo, dispatcher, reloj)
	empleadoSvc := service.NewEmpleadoService(empleadoRepo, horarioRepo, asistenciaRepo, reloj, cfg.PDFStoragePath)
	horarioSvc := service.NewHorarioService(horarioRepo, empleadoRepo, asistenciaRepo, reloj)
	asistenciaSvc := service.NewAsistenciaService(asistenciaRepo, empleadoRepo, reloj)

	// ── Handlers ─────────────────────────────────────────────────────────────
	insumosH := handler.NewInsumosHandler(insumoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	empleadosH := handler.NewEmpleadosHandler(empleadoSvc)
	horariosH := handler.NewHorariosHandler(horarioSvc)
	asistenciasH := handler.NewAsistenciasHandler(asistenciaSvc)
	costosH := handler.NewConsultaCostosHandler(productoSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		insumos := v1.Group("/insumos")
		{
			insumos.POST("", insumosH.Crear)
			insumos.GET("", insumosH.Listar)
			insumos.GET("/bajo-stock", insumosH.ListarBajoStock)
			insumos.GET("/:id", insumosH.Obtener)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Eliminar)
			insumos.POST("/:id/desactivar", insumosH.Desactivar)
			insumos.PATCH("/:id/reactivar", insumosH.Reactivar)
		}

		productos := v1.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.Obtener)
			productos.GET("/:id/costos", costosH.GetCostos)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.POST("/:id/receta", productosH.AgregarReceta)
			productos.PUT("/:id/receta/:recetaId", productosH.ActualizarReceta)
			productos.DELETE("/:id/receta/:recetaId", productosH.EliminarReceta)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
			clientes.POST("/:id/desactivar", clientesH.Desactivar)
			clientes.PATCH("/:id/reactivar", clientesH.Reactivar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.Crear)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
			ventas.PUT("/:id", ventasH.Actualizar)
			ventas.DELETE("/:id", ventasH.Cancelar)
			ventas.POST("/:id/finalizar", ventasH.Finalizar)
			ventas.POST("/:id/items", ventasH.AgregarItem)
			ventas.PUT("/:id/items/:itemId", ventasH.ActualizarItem)
			ventas.DELETE("/:id/items/:itemId", ventasH.EliminarItem)
		}

		empleados := v1.Group("/empleados")
		{
			empleados.POST("", empleadosH.Crear)
			empleados.GET("", empleadosH.Listar)
			empleados.GET("/:id", empleadosH.Obtener)
			empleados.PUT("/:id", empleadosH.Actualizar)
			empleados.DELETE("/:id", empleadosH.Desactivar)
			empleados.PATCH("/:id/reactivar", empleadosH.Reactivar)
			empleados.GET("/:id/horas", empleadosH.ResumenHoras)
			empleados.POST("/:id/recibo", empleadosH.GenerarRecibo)
			empleados.GET("/:id/asistencias", asistenciasH.ListarPorEmpleado)
		}

		horarios := v1.Group("/horarios")
		{
			horarios.POST("", horariosH.Crear)
			horarios.GET("/tablero", horariosH.TableroSemana)
			horarios.GET("/:id", horariosH.Obtener)
			horarios.PUT("/:id", horariosH.Actualizar)
			horarios.DELETE("/:id", horariosH.Eliminar)
		}

		asistencias := v1.Group("/asistencias")
		{
			// bcrypt check per attempt — stricter limit
			asistencias.POST("/marcar", middleware.MarcarRateLimiter(), asistenciasH.Marcar)
			asistencias.GET("/:id", asistenciasH.Obtener)
			asistencias.PUT("/:id", asistenciasH.Actualizar)
			asistencias.DELETE("/:id", asistenciasH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
