package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"interviewsched/handlers"
	"interviewsched/middleware"
	"interviewsched/models"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/health", hb.HealthHandler)
}

// RegisterDirectoryRoutes registers the read-only endpoints. No role required.
func RegisterDirectoryRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/people", hb.PeopleHandler)
	api.GET("/slots", hb.ListSlotsHandler)
	api.GET("/calendar", hb.CalendarHandler)
	api.POST("/reset", hb.ResetHandler)
}

// RegisterInterviewerRoutes registers endpoints interviewers use to publish availability.
func RegisterInterviewerRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	interviewer := api.Group("")
	interviewer.Use(middleware.RequireRole(models.RoleInterviewer))
	{
		interviewer.POST("/slots", hb.CreateSlotHandler)
	}
}

// RegisterCoordinatorRoutes registers the booking endpoints.
func RegisterCoordinatorRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	coordinator := api.Group("")
	coordinator.Use(middleware.RequireRole(models.RoleCoordinator))
	{
		coordinator.POST("/book", hb.BookSlotHandler)
		coordinator.POST("/reschedule", hb.RescheduleHandler)
		coordinator.DELETE("/booking/:id", hb.CancelBookingHandler)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RoleHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and the CORS policy.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string) {
	r.Use(cors.New(corsConfig(allowOrigins)))

	api := r.Group("/api")
	RegisterHealthRoute(api, hb)
	RegisterDirectoryRoutes(api, hb)
	RegisterInterviewerRoutes(api, hb)
	RegisterCoordinatorRoutes(api, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": models.CodeNotFound, "message": "Route not found"})
	})
}
