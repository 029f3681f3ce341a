package router

import (
	"time"

	"rapifarma/internal/config"
	"rapifarma/internal/handler"
	"rapifarma/internal/infra"
	"rapifarma/internal/middleware"
	"rapifarma/internal/repository"
	"rapifarma/internal/service"
	"rapifarma/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, legacyCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	legacyClient := infra.NewLegacyClient(cfg.LegacyAPIURL, cfg.LegacyAPIToken)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	farmaciaRepo := repository.NewFarmaciaRepository(db)
	cuadreRepo := repository.NewCuadreRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	cppRepo := repository.NewCuentaPorPagarRepository(db)
	pagoCPPRepo := repository.NewPagoCPPRepository(db)
	bancoRepo := repository.NewBancoRepository(db)
	metaRepo := repository.NewMetaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	farmaciaSvc := service.NewFarmaciaService(farmaciaRepo, legacyClient, legacyCB)
	metaSvc := service.NewMetaService(metaRepo, cuadreRepo)
	cuadreSvc := service.NewCuadreService(cuadreRepo, metaSvc, dispatcher, cfg.NotificacionesEmail)
	gastoSvc := service.NewGastoService(gastoRepo)
	cppSvc := service.NewCuentaPorPagarService(cppRepo, pagoCPPRepo)
	bancoSvc := service.NewBancoService(bancoRepo)
	reporteSvc := service.NewReporteService(reporteRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	farmaciasH := handler.NewFarmaciasHandler(farmaciaSvc)
	cajerosH := handler.NewCajerosHandler(farmaciaSvc)
	cuadresH := handler.NewCuadresHandler(cuadreSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	cppH := handler.NewCuentasPorPagarHandler(cppSvc)
	pagosH := handler.NewPagosCPPHandler(cppSvc)
	bancosH := handler.NewBancosHandler(bancoSvc)
	metasH := handler.NewMetasHandler(metaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		lectura := middleware.RequireRole("cajero", "supervisor", "administrador")
		supervision := middleware.RequireRole("supervisor", "administrador")
		admin := middleware.RequireRole("administrador")

		// Farmacias — catálogo editable, sincronizable desde la API legada
		v1.GET("/farmacias", lectura, farmaciasH.Listar)
		v1.GET("/farmacias/mapa", lectura, farmaciasH.Mapa)
		v1.GET("/farmacias/:id", lectura, farmaciasH.Obtener)
		farmacias := v1.Group("/farmacias", admin)
		{
			farmacias.POST("", farmaciasH.Crear)
			farmacias.PUT("/:id", farmaciasH.Actualizar)
			farmacias.DELETE("/:id", farmaciasH.Desactivar)
			farmacias.POST("/sincronizar", farmaciasH.Sincronizar)
		}

		v1.GET("/cajeros", lectura, cajerosH.Listar)
		v1.POST("/cajeros", supervision, cajerosH.Crear)
		v1.GET("/inventarios", lectura, farmaciasH.Inventarios)

		// Cuadres — el cierre lo registra el cajero; verificar/negar es del supervisor
		cuadres := v1.Group("/cuadres")
		{
			cuadres.POST("", lectura, cuadresH.Crear)
			cuadres.GET("", lectura, cuadresH.Listar)
			cuadres.GET("/resumen", lectura, cuadresH.Resumen)
			cuadres.GET("/:id", lectura, cuadresH.Obtener)
			cuadres.PATCH("/:id/estado", supervision, cuadresH.CambiarEstado)
		}

		gastos := v1.Group("/gastos")
		{
			gastos.POST("", lectura, gastosH.Crear)
			gastos.GET("", lectura, gastosH.Listar)
			gastos.GET("/total", lectura, gastosH.Total)
			gastos.PATCH("/estado", supervision, gastosH.CambiarEstado)
			gastos.GET("/:id", lectura, gastosH.Obtener)
		}

		cpp := v1.Group("/cuentas-por-pagar", supervision)
		{
			cpp.POST("", cppH.Crear)
			cpp.GET("", cppH.Listar)
			cpp.GET("/rango", cppH.ListarRango)
			cpp.GET("/:id", cppH.Obtener)
			cpp.PATCH("/:id/estatus", cppH.CambiarEstatus)
		}

		pagos := v1.Group("/pagos-cpp", supervision)
		{
			pagos.POST("", pagosH.Registrar)
			pagos.GET("", pagosH.Listar)
			pagos.GET("/rango-fechas", pagosH.ListarRango)
			pagos.PATCH("/:id/estado", pagosH.CambiarEstado)
		}

		bancos := v1.Group("/bancos", supervision)
		{
			bancos.POST("", bancosH.Crear)
			bancos.GET("", bancosH.Listar)
			bancos.GET("/movimientos", bancosH.Movimientos)
			bancos.GET("/:id", bancosH.Obtener)
			bancos.PUT("/:id", bancosH.Actualizar)
			bancos.DELETE("/:id", bancosH.Desactivar)
			bancos.POST("/:id/deposito", bancosH.Deposito)
			bancos.POST("/:id/transferencia", bancosH.Transferencia)
			bancos.POST("/:id/cheque", bancosH.Cheque)
			bancos.POST("/:id/retiro", bancosH.Retiro)
			bancos.GET("/:id/conciliar", bancosH.Conciliar)
		}

		v1.GET("/metas", lectura, metasH.Listar)
		v1.GET("/metas/:id", lectura, metasH.Obtener)
		metas := v1.Group("/metas", supervision)
		{
			metas.POST("", metasH.Crear)
			metas.PUT("/:id", metasH.Actualizar)
			metas.DELETE("/:id", metasH.Eliminar)
		}

		reportes := v1.Group("/reportes", supervision)
		{
			reportes.POST("", reportesH.Solicitar)
			reportes.GET("/:id", reportesH.Obtener)
			reportes.GET("/:id/descargar", reportesH.Descargar)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
