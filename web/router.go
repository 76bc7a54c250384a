package web

import (
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(30 * time.Second))

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-User-GUID"},
			MaxAge:         300,
		}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", oauthLoginHandler(ctrl))
		r.Get("/callback", oauthCallbackHandler(ctrl, render))
	})

	r.Route("/me", func(r chi.Router) {
		r.Get("/leagues", getLeaguesHandler(ctrl, render))
		r.Get("/matchups", getMatchupHandler(ctrl, render))
	})

	r.Route("/leagues/{leagueKey}", func(r chi.Router) {
		r.Get("/teams", getTeamsHandler(ctrl, render))
		r.Get("/my-team", getMyTeamHandler(ctrl, render))
		r.Get("/standings", getStandingsHandler(ctrl, render))
		r.Get("/players", getPlayersHandler(ctrl, render))
	})

	r.Get("/teams/{teamKey}/roster", getRosterHandler(ctrl, render))

	return r
}
