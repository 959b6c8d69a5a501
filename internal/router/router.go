package router

import (
	"time"

	"nexopos/internal/config"
	"nexopos/internal/handler"
	"nexopos/internal/middleware"
	"nexopos/internal/repository"
	"nexopos/internal/service"
	"nexopos/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	plantillaRepo := repository.NewPlantillaRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	cajaSvc := service.NewCajaService(cajaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaRepo, clienteRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, productoRepo, plantillaRepo, clienteRepo, dispatcher)
	plantillaSvc := service.NewPlantillaService(plantillaRepo)
	catalogoSvc := service.NewCatalogoService(clienteRepo, sucursalRepo, categoriaRepo, proveedorRepo)
	reporteSvc := service.NewReporteService(reporteRepo)
	consultaSvc := service.NewConsultaPreciosService(productoRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	plantillasH := handler.NewPlantillasHandler(plantillaSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	consultaH := handler.NewConsultaPreciosHandler(consultaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — the shop-floor kiosk scans without a session
	r.GET("/v1/consulta-precios/:codigo", middleware.RateLimiter(60, time.Minute), consultaH.ConsultarPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("cajero", "supervisor", "administrador")
	supervisores := middleware.RequireRole("supervisor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Ventas — any caja role records, only supervisors reverse
		v1.POST("/ventas", todos, ventasH.RegistrarVenta)
		v1.GET("/ventas", todos, ventasH.ListarVentas)
		v1.GET("/ventas/:id", todos, ventasH.ObtenerVenta)
		v1.DELETE("/ventas/:id", supervisores, ventasH.EliminarVenta)

		// Cajas
		cajas := v1.Group("/cajas")
		{
			cajas.POST("", todos, cajaH.AbrirCaja)
			cajas.GET("/abierta", todos, cajaH.ObtenerCajaAbierta)
			cajas.GET("/:id", todos, cajaH.ObtenerCaja)
			cajas.POST("/:id/cerrar", todos, cajaH.CerrarCaja)
			cajas.POST("/:id/movimientos", supervisores, cajaH.RegistrarMovimiento)
			cajas.GET("/:id/movimientos", todos, cajaH.ListarMovimientos)
		}

		// Productos — reads for everyone, stock adjustments for supervisors,
		// catalog writes for administrators
		v1.GET("/productos", todos, productosH.ListarProductos)
		v1.GET("/productos/:id", todos, productosH.ObtenerProducto)
		v1.GET("/productos/:id/movimientos", todos, productosH.ListarMovimientosStock)
		v1.POST("/productos/:id/stock", supervisores, productosH.AjustarStock)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.CrearProducto)
			prods.PATCH("/:id", productosH.ActualizarProducto)
			prods.DELETE("/:id", productosH.DesactivarProducto)
			prods.POST("/:id/reactivar", productosH.ReactivarProducto)
		}

		// Cotizaciones
		cot := v1.Group("/cotizaciones", todos)
		{
			cot.POST("", cotizacionesH.CrearCotizacion)
			cot.GET("", cotizacionesH.ListarCotizaciones)
			cot.GET("/:id", cotizacionesH.ObtenerCotizacion)
			cot.GET("/:id/pdf", cotizacionesH.DescargarPDF)
			cot.PATCH("/:id", cotizacionesH.ActualizarCotizacion)
			cot.DELETE("/:id", cotizacionesH.EliminarCotizacion)
		}

		// Plantillas — branding is an admin concern
		plant := v1.Group("/plantillas", admin)
		{
			plant.POST("", plantillasH.CrearPlantilla)
			plant.GET("", plantillasH.ListarPlantillas)
			plant.GET("/:id", plantillasH.ObtenerPlantilla)
			plant.PATCH("/:id", plantillasH.ActualizarPlantilla)
			plant.DELETE("/:id", plantillasH.EliminarPlantilla)
		}
		// Reading plantillas is also needed when issuing cotizaciones
		v1.GET("/plantillas-disponibles", todos, plantillasH.ListarPlantillas)

		// Clientes
		v1.POST("/clientes", todos, catalogoH.CrearCliente)
		v1.GET("/clientes", todos, catalogoH.ListarClientes)
		v1.GET("/clientes/:id", todos, catalogoH.ObtenerCliente)

		// Sucursales / categorías / proveedores — admin surfaces
		v1.POST("/sucursales", admin, catalogoH.CrearSucursal)
		v1.GET("/sucursales", todos, catalogoH.ListarSucursales)
		v1.POST("/categorias", admin, catalogoH.CrearCategoria)
		v1.GET("/categorias", todos, catalogoH.ListarCategorias)
		v1.POST("/proveedores", admin, catalogoH.CrearProveedor)
		v1.GET("/proveedores", todos, catalogoH.ListarProveedores)

		// Reportes
		rep := v1.Group("/reportes", supervisores)
		{
			rep.GET("/resumen", reportesH.Resumen)
			rep.GET("/productos", reportesH.VentasPorProducto)
		}
	}

	return r
}
