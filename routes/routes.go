package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

// CORS preflight requests are answered by the cors middleware before these
// handlers run.
var routableMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

func cleanOrigins(raw []string) []string {
	origins := make([]string, 0, len(raw))
	for _, part := range raw {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func corsMiddleware(raw []string) gin.HandlerFunc {
	origins := cleanOrigins(raw)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if allowCredentials {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

type endpoint struct {
	method  string
	handler gin.HandlerFunc
}

// handle registers the given endpoints on path and answers every other
// routable method with 405 and an Allow header.
func handle(g gin.IRoutes, path string, endpoints ...endpoint) {
	allowed := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		g.Handle(e.method, path, e.handler)
		allowed = append(allowed, e.method)
	}

	notAllowed := methodNotAllowed(allowed)
	for _, m := range routableMethods {
		if !contains(allowed, m) {
			g.Handle(m, path, notAllowed)
		}
	}
}

func methodNotAllowed(allowed []string) gin.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
			"error": fmt.Sprintf("Method %s not allowed", c.Request.Method),
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func get(h gin.HandlerFunc) endpoint  { return endpoint{http.MethodGet, h} }
func post(h gin.HandlerFunc) endpoint { return endpoint{http.MethodPost, h} }

// SetupRouter wires middleware and every API route.
func SetupRouter(
	pc *controllers.PropertyController,
	bc *controllers.BookingController,
	rc *controllers.ReviewController,
	corsOrigins []string,
	log *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		corsMiddleware(corsOrigins),
	)

	handle(r, "/health", get(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}))

	api := r.Group("/api")
	{
		handle(api, "/properties", get(pc.GetProperties))
		handle(api, "/properties/:id", get(pc.GetProperty))
		handle(api, "/properties/:id/reviews", get(rc.GetReviews), post(rc.CreateReview))
		handle(api, "/properties/:id/reviews/stats", get(rc.GetReviewStats))
		handle(api, "/properties/:id/quote", post(bc.QuoteBooking))
		handle(api, "/properties/:id/bookings", post(bc.CheckoutBooking))

		handle(api, "/reviews/:reviewId/helpful", post(rc.MarkHelpful))

		handle(api, "/bookings", get(bc.GetBookings), post(bc.CreateBooking))
		handle(api, "/bookings/:id", get(bc.GetBooking))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
