package api

import (
	"log"
	stdhttp "net/http"

	h "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/handlers"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(hs *h.Handlers) *gin.Engine {
	env := hs.Env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	if hs.Metrics != nil {
		r.GET("/metrics", gin.WrapH(hs.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/config", hs.Config)
		api.POST("/fare/estimate", hs.EstimateFare)
		api.GET("/tracking/buses", hs.TrackBuses)
		api.GET("/feeds/vehicle-positions", hs.VehiclePositions)

		// On-bus devices
		api.POST("/locations", middleware.DeviceKey(env.DeviceKeyHash), hs.IngestLocation)

		authed := api.Group("", middleware.Auth([]byte(env.JWTSecret)))

		authed.POST("/scan", middleware.RequireRoles("admin", "conductor"), hs.Scan)

		passes := authed.Group("/passes")
		passes.GET("", hs.ListPasses)
		passes.GET("/:id", hs.GetPass)
		passes.GET("/:id/pdf", hs.GetPassPDF)

		authed.POST("/tickets", hs.PurchaseTicket)

		trips := authed.Group("/trips")
		trips.POST("/start", hs.StartTrip)
		trips.POST("/end", hs.EndTrip)
		trips.GET("/history", hs.TripHistory)

		authed.GET("/rides/history", hs.RideHistory)

		admin := authed.Group("/admin", middleware.RequireRoles("admin"))
		admin.GET("/dashboard", hs.AdminDashboard)
		admin.POST("/notifications", hs.SendNotification)
		admin.PUT("/concessions/:userId", hs.VerifyConcession)
	}

	return r
}
