package routes

import (
	"github.com/avidela47/SS-BienesRaices-sub000/controllers"
	"github.com/avidela47/SS-BienesRaices-sub000/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		// todo lo demás requiere token
		priv := api.Group("/", middlewares.AuthMiddleware())

		priv.GET("/perfil", controllers.Perfil)
		priv.POST("/usuarios", middlewares.AdminOnly(), controllers.RegistrarUsuario)

		personas := priv.Group("/personas")
		{
			personas.GET("/", controllers.GetAllPersonas)
			personas.GET("/:id", controllers.GetPersonaByID)
			personas.POST("/", controllers.CreatePersona)
			personas.PUT("/:id", controllers.UpdatePersona)
			personas.DELETE("/:id", controllers.DeletePersona)
		}

		propiedades := priv.Group("/propiedades")
		{
			propiedades.GET("/", controllers.GetAllPropiedades)
			propiedades.GET("/:id", controllers.GetPropiedadByID)
			propiedades.POST("/", controllers.CreatePropiedad)
			propiedades.PUT("/:id", controllers.UpdatePropiedad)
			propiedades.DELETE("/:id", controllers.DeletePropiedad)
		}

		contratos := priv.Group("/contratos")
		{
			contratos.GET("/", controllers.GetAllContratos)
			contratos.POST("/", controllers.CrearContrato)
			contratos.GET("/:id", controllers.DetalleContrato)
			contratos.PUT("/:id", controllers.ActualizarContrato)
			contratos.DELETE("/:id", controllers.DeleteContrato)
			contratos.POST("/:id/activar", controllers.ActivarContrato)
			contratos.POST("/:id/rescindir", controllers.RescindirContrato)
			contratos.GET("/:id/cuotas", controllers.ListarCuotasContrato)
		}

		cuotas := priv.Group("/cuotas")
		{
			cuotas.GET("/vencidas", controllers.CuotasVencidas)
			cuotas.GET("/:id/pagos", controllers.ListarPagosCuota)
			cuotas.POST("/:id/pagos", controllers.RegistrarPago)
		}

		pagos := priv.Group("/pagos")
		{
			pagos.POST("/:id/anular", controllers.AnularPago)
		}

		caja := priv.Group("/caja")
		{
			caja.GET("/", controllers.ListarMovimientos)
			caja.POST("/", controllers.CrearMovimiento)
			caja.GET("/resumen", controllers.ResumenCaja)
			caja.POST("/:id/cobrar", controllers.CobrarMovimiento)
			caja.POST("/:id/liberar", controllers.LiberarMovimiento)
			caja.POST("/:id/transferir", controllers.TransferirMovimiento)
			caja.POST("/:id/anular", controllers.AnularMovimiento)
		}

		batch := priv.Group("/batch")
		{
			batch.POST("/generar-cuotas", controllers.GenerarCuotasBatch)
			batch.GET("/reparar-fechas", middlewares.AdminOnly(), controllers.RepararFechasInicio)
		}
	}
}
