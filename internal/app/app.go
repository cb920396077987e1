package app

import (
	"github.com/vncsmyrnk/election/internal/adapters/repository/kv"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

// App bundles the election services over one key-value store.
type App struct {
	Store     ports.KVStore
	Elections ports.ElectionService
	Candidacy ports.CandidacyService
	Votes     ports.VoteService
	Queries   ports.QueryService
}

func New(store ports.KVStore, cfg *config.Config, clock ports.Clock) *App {
	elections := kv.NewElectionStore(store)
	window := services.Window{
		StartsIn: cfg.Election.StartsIn,
		EndsIn:   cfg.Election.EndsIn,
	}

	return &App{
		Store:     store,
		Elections: services.NewElectionService(elections, clock, services.NewUUIDGenerator(), window),
		Candidacy: services.NewCandidacyService(elections, clock),
		Votes:     services.NewVoteService(elections, clock),
		Queries:   services.NewQueryService(elections),
	}
}
