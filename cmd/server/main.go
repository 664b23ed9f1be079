package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/clmarcel/pokedex-api/internal/auth"
	"github.com/clmarcel/pokedex-api/internal/catalog"
	"github.com/clmarcel/pokedex-api/internal/config"
	"github.com/clmarcel/pokedex-api/internal/middleware"
	"github.com/clmarcel/pokedex-api/internal/store"
	"github.com/clmarcel/pokedex-api/internal/trainer"
	"github.com/clmarcel/pokedex-api/internal/users"
	"github.com/clmarcel/pokedex-api/web"
)

// newRouter assembles the full HTTP surface over the given handlers.
func newRouter(
	cfg *config.Config,
	tokens *auth.TokenManager,
	authHandler *auth.Handler,
	catalogHandler *catalog.Handler,
	trainerHandler *trainer.Handler,
	usersHandler *users.Handler,
) *chi.Mux {
	requireAuth := middleware.RequireAuth(tokens)

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(requireAuth).Get("/checkUser", authHandler.CheckUser)
	})

	r.Route("/api/pkmn", func(r chi.Router) {
		r.Get("/", catalogHandler.List)
		r.Get("/search", catalogHandler.Search)
		r.Get("/types", catalogHandler.Types)
		r.With(requireAuth).Post("/", catalogHandler.Create)
		r.With(requireAuth, middleware.RequireAdmin).Put("/", catalogHandler.Update)
		r.With(requireAuth, middleware.RequireAdmin).Delete("/", catalogHandler.Delete)
		r.With(requireAuth).Post("/region", catalogHandler.AddRegion)
		r.With(requireAuth, middleware.RequireAdmin).Delete("/region", catalogHandler.RemoveRegion)
	})

	r.Route("/trainer", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", trainerHandler.Create)
		r.Get("/", trainerHandler.Get)
		r.Put("/", trainerHandler.Update)
		r.Delete("/", trainerHandler.Delete)
		r.Post("/mark", trainerHandler.Mark)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", usersHandler.Create)
		r.With(requireAuth, middleware.RequireAdmin).Get("/", usersHandler.List)
		r.With(requireAuth).Get("/{idOrEmail}", usersHandler.Get)
		r.With(requireAuth).Put("/{id}", usersHandler.Update)
		r.With(requireAuth, middleware.RequireAdmin).Delete("/{id}", usersHandler.Delete)
	})

	// Front end
	r.Handle("/*", web.Handler())

	return r
}

func main() {
	cfg := config.Load()
	if cfg.TokenSecret == "" {
		log.Fatal("TOKEN_SECRET must be set")
	}
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	userStore := store.NewUserStore(db)
	pokemonStore := store.NewPokemonStore(db)
	trainerStore := store.NewTrainerStore(db)

	// ── Services & handlers ──────────────────────────────────
	tokens := auth.NewTokenManager(cfg.TokenSecret)
	authHandler := auth.NewHandler(userStore, tokens)
	catalogHandler := catalog.NewHandler(catalog.NewService(pokemonStore))
	trainerHandler := trainer.NewHandler(trainer.NewService(trainerStore, userStore, pokemonStore))
	usersHandler := users.NewHandler(userStore)

	r := newRouter(cfg, tokens, authHandler, catalogHandler, trainerHandler, usersHandler)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Pokedex API listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
