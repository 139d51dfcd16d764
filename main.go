package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banquet/db"
	"banquet/events"
	"banquet/health"
	"banquet/live"
	"banquet/ratelim"
	"banquet/rdx"
	"banquet/reservations"
	"banquet/routes"
	"banquet/tables"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func setupRouter(store *db.Store, cache *rdx.Conn, hub *live.Hub, emitter *events.Emitter) *httprouter.Router {
	rateLimiter := ratelim.NewRateLimiter(5, 10)

	router := httprouter.New()
	routes.AddHealthRoutes(router, health.NewHandler(store))
	routes.AddTableRoutes(router, tables.NewHandler(store, cache, emitter), rateLimiter)
	routes.AddReservationRoutes(router, reservations.NewHandler(reservations.NewService(store), emitter), rateLimiter)
	routes.AddLiveRoutes(router, hub)
	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8000"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The server starts even without a database: handlers answer 500 and the
	// /test endpoint reports the missing configuration.
	var store *db.Store
	if uri := os.Getenv("DATABASE_URL"); uri != "" {
		name := os.Getenv("DATABASE_NAME")
		if name == "" {
			name = "seatingdb"
		}
		var err error
		store, err = db.Connect(ctx, uri, name)
		if err != nil {
			log.Printf("❌ Database connection failed: %v", err)
			store = nil
		} else {
			log.Printf("✅ Connected to database %q", name)
		}
	} else {
		log.Println("⚠️  DATABASE_URL not set; store operations will fail")
	}

	cache := rdx.NewConn()
	hub := live.NewHub()

	// Layout events invalidate the cached table list and wake websocket
	// subscribers; with redis they reach every instance through pub/sub.
	emitter := events.NewEmitter(cache, func(ev events.Event) {
		cache.Del(context.Background(), tables.CacheKey)
		if ev.TableID != "" {
			hub.BroadcastUpdate(ev.TableID)
		}
	})
	emitter.StartWorker(ctx)

	router := setupRouter(store, cache, hub, emitter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Closing websocket subscribers...")
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Seating API listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	cancel() // stops the event worker
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("⚠️  Database disconnect: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Printf("⚠️  Redis close: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
