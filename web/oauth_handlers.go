package web

import (
	"net/http"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/unrolled/render"
)

func oauthLoginHandler(ctrl controller.C) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := ctrl.OAuthStart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

func oauthCallbackHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		code := params.Get("code")
		state := params.Get("state")

		guid, err := ctrl.OAuthExchange(r.Context(), state, code)
		if err != nil {
			renderError(render, w, err)
			return
		}

		render.JSON(w, http.StatusOK, map[string]string{"user_guid": guid})
	}
}
