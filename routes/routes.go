package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/mcr-results/docs" // регистрирует swagger-спецификацию
	"github.com/Dosada05/mcr-results/handlers"
	"github.com/Dosada05/mcr-results/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	adminHandler *handlers.AdminHandler,
	jwtSecret []byte,
	corsOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		// Публичные маршруты, только чтение
		r.Get("/status", tournamentHandler.GetStatus)
		r.Get("/teams", tournamentHandler.GetTeams)
		r.Get("/schedule", tournamentHandler.GetSchedule)
		r.Get("/standings", tournamentHandler.GetStandings)
		r.Get("/bracket", tournamentHandler.GetBracket)
		r.Get("/changes", tournamentHandler.GetChanges)

		r.Get("/filter", tournamentHandler.GetFilter)
		r.Put("/filter", tournamentHandler.PutFilter)

		// Только для администраторов
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(middleware.RoleAdmin))

			r.Post("/refresh", adminHandler.Refresh)
			r.Post("/backups/{resource}", adminHandler.PublishBackup)
			r.Get("/cache", adminHandler.ListCache)
			r.Delete("/cache/{resource}", adminHandler.PurgeCache)
		})
	})
}
