package routes

import (
	"banquet/health"
	"banquet/live"
	"banquet/ratelim"
	"banquet/reservations"
	"banquet/tables"

	"github.com/julienschmidt/httprouter"
)

func AddHealthRoutes(router *httprouter.Router, h *health.Handler) {
	router.GET("/", h.Root)
	router.GET("/test", h.TestDatabase)
}

func AddTableRoutes(router *httprouter.Router, h *tables.Handler, rl *ratelim.RateLimiter) {
	router.GET("/tables", h.List)
	router.POST("/seed", rl.Limit(h.Seed))
}

func AddReservationRoutes(router *httprouter.Router, h *reservations.Handler, rl *ratelim.RateLimiter) {
	router.POST("/reserve", rl.Limit(h.Reserve))
	router.GET("/tables/:id/reservations", h.ListForTable)
	router.GET("/reservations/:id/print", h.PrintReservation)
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/tables/:id", hub.HandleWS)
}
