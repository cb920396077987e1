package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

func NewHandler(electionHandler *ElectionHandler, candidacyHandler *CandidacyHandler, voteHandler *VoteHandler, verifier ports.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authenticated := Authenticate(verifier)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/elections", func(r chi.Router) {
			r.Get("/", electionHandler.ListElections)
			r.With(authenticated).Post("/", electionHandler.CreateElection)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", electionHandler.GetElection)
				r.Get("/candidates", electionHandler.ListCandidates)
				r.With(authenticated).Post("/candidates", candidacyHandler.RegisterCandidacy)
				r.Get("/votes", electionHandler.ListVotes)
				r.With(authenticated).Post("/votes", voteHandler.CastVote)
			})
		})
	})

	return r
}
