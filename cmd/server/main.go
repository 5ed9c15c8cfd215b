package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaitanyakotagiri27/SecureShift/internal/common"
	"github.com/chaitanyakotagiri27/SecureShift/internal/config"
	"github.com/chaitanyakotagiri27/SecureShift/internal/dbmysql"
	"github.com/chaitanyakotagiri27/SecureShift/internal/di"
)

func main() {
	log.Println("Starting SecureShift API...")

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.LoadConfig()

	app, err := di.InitializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Migrations belong in main, not buried in a repository
	if err := app.DB.AutoMigrate(&dbmysql.User{}, &dbmysql.Message{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	router := buildRouter(app)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("SecureShift API running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down SecureShift API...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("SecureShift API stopped")
}

func buildRouter(app *di.Application) *mux.Router {
	router := mux.NewRouter()
	router.Use(common.Metrics)
	router.Use(loggingMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", health).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/register", app.UserHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", app.UserHandler.Login).Methods("POST")

	// Everything else requires a valid token
	protected := api.NewRoute().Subrouter()
	protected.Use(common.Authenticate)

	protected.HandleFunc("/users/me", app.UserHandler.Me).Methods("GET")
	protected.HandleFunc("/users/me", app.UserHandler.UpdateMe).Methods("PATCH")
	protected.HandleFunc("/users/me/password", app.UserHandler.ChangePassword).Methods("POST")
	protected.HandleFunc("/users/me", app.UserHandler.DeactivateMe).Methods("DELETE")

	protected.HandleFunc("/messages", app.MessageHandler.Send).Methods("POST")
	protected.HandleFunc("/messages/inbox", app.MessageHandler.Inbox).Methods("GET")
	protected.HandleFunc("/messages/sent", app.MessageHandler.Sent).Methods("GET")
	protected.HandleFunc("/messages/stats", app.MessageHandler.Stats).Methods("GET")
	protected.HandleFunc("/messages/conversation/{userId}", app.MessageHandler.Conversation).Methods("GET")
	protected.HandleFunc("/messages/{messageId}/read", app.MessageHandler.MarkRead).Methods("PATCH")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(common.RequireRoles(common.RoleAdmin))
	admin.HandleFunc("/users", app.UserHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{userId}", app.UserHandler.GetUser).Methods("GET")
	admin.HandleFunc("/users/{userId}", app.UserHandler.DeleteUser).Methods("DELETE")

	return router
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("→ %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("✓ %s %s completed (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
