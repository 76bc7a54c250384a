package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo/normalize"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

// userGUIDHeader identifies the acting user on every data request. Parsed
// once here and threaded explicitly through the controller.
const userGUIDHeader = "X-User-GUID"

type errorResponse struct {
	Error string `json:"error"`
}

// renderError maps the error taxonomy onto HTTP statuses. Auth problems
// are 401 so clients know to restart the login flow; vendor failures keep
// their kind visible in the status rather than collapsing to 500.
func renderError(render *render.Render, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var shapeErr *normalize.UnrecognizedShapeError
	var vendorErr *yahoo.VendorError

	switch {
	case errors.Is(err, yahoo.ErrNotAuthenticated), errors.Is(err, yahoo.ErrReauthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, controller.ErrInvalidState), errors.Is(err, controller.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, controller.ErrOAuthExchange):
		status = http.StatusBadGateway
	case errors.Is(err, controller.ErrTeamNotFound), errors.Is(err, controller.ErrNoMatchup):
		status = http.StatusNotFound
	case errors.As(err, &shapeErr):
		status = http.StatusBadGateway
	case errors.As(err, &vendorErr):
		switch vendorErr.Kind {
		case yahoo.KindRateLimit:
			status = http.StatusTooManyRequests
		case yahoo.KindNotFound:
			status = http.StatusNotFound
		case yahoo.KindTimeout:
			status = http.StatusGatewayTimeout
		default:
			status = http.StatusBadGateway
		}
	case errors.Is(err, db.ErrCredentialDecrypt):
		status = http.StatusInternalServerError
	}

	render.JSON(w, status, errorResponse{Error: err.Error()})
}

// requireUser pulls the user GUID header, writing a 401 when it is missing.
func requireUser(render *render.Render, w http.ResponseWriter, r *http.Request) (string, bool) {
	guid := r.Header.Get(userGUIDHeader)
	if guid == "" {
		render.JSON(w, http.StatusUnauthorized, errorResponse{Error: "missing " + userGUIDHeader + " header"})
		return "", false
	}
	return guid, true
}

func getLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		params := r.URL.Query()
		season := 0
		if s := params.Get("season"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "season must be a year"})
				return
			}
			season = v
		}

		leagues, err := ctrl.GetLeagues(r.Context(), guid, params.Get("sport"), season)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func getTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		teams, err := ctrl.GetTeams(r.Context(), guid, chi.URLParam(r, "leagueKey"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func getMyTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		team, err := ctrl.GetMyTeam(r.Context(), guid, chi.URLParam(r, "leagueKey"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, team)
	}
}

func getStandingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		standings, err := ctrl.GetStandings(r.Context(), guid, chi.URLParam(r, "leagueKey"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, standings)
	}
}

func getRosterHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		roster, err := ctrl.GetRoster(r.Context(), guid, chi.URLParam(r, "teamKey"), r.URL.Query().Get("date"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, roster)
	}
}

func getPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		params := r.URL.Query()
		query := controller.PlayerQuery{
			Status:   params.Get("status"),
			Position: params.Get("position"),
			Search:   params.Get("search"),
		}
		if s := params.Get("start"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 0 {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "start must be a non-negative number"})
				return
			}
			query.Start = v
		}
		if s := params.Get("count"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 1 {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "count must be a positive number"})
				return
			}
			query.Count = v
		}

		players, err := ctrl.GetPlayers(r.Context(), guid, chi.URLParam(r, "leagueKey"), query)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, players)
	}
}

func getMatchupHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guid, ok := requireUser(render, w, r)
		if !ok {
			return
		}

		params := r.URL.Query()
		leagueKey := params.Get("league")
		if leagueKey == "" {
			leagueKey = params.Get("league_id")
		}
		if leagueKey == "" {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "league parameter is required"})
			return
		}

		week := 0
		if s := params.Get("week"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 1 {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "week must be a positive number"})
				return
			}
			week = v
		}

		matchup, err := ctrl.GetMatchup(r.Context(), guid, leagueKey, week,
			boolParam(params.Get("points"), true),
			boolParam(params.Get("categories"), true))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matchup)
	}
}

func boolParam(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
