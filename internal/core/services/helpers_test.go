package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/election/internal/adapters/repository/kv"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

var t0 = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func duration(d time.Duration) *time.Duration {
	return &d
}

type sequenceIDs struct {
	ids []domain.ElectionID
	n   int
}

func (s *sequenceIDs) NextID() domain.ElectionID {
	id := s.ids[s.n%len(s.ids)]
	s.n++
	return id
}

type testEnv struct {
	kv        *memory.Store
	clock     *fakeClock
	elections ports.ElectionService
	candidacy ports.CandidacyService
	votes     ports.VoteService
	queries   ports.QueryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithIDs(t, NewUUIDGenerator())
}

func newTestEnvWithIDs(t *testing.T, ids ports.IDGenerator) *testEnv {
	t.Helper()

	kvStore := memory.NewStore()
	store := kv.NewElectionStore(kvStore)
	clock := &fakeClock{now: t0}

	return &testEnv{
		kv:        kvStore,
		clock:     clock,
		elections: NewElectionService(store, clock, ids, DefaultWindow()),
		candidacy: NewCandidacyService(store, clock),
		votes:     NewVoteService(store, clock),
		queries:   NewQueryService(store),
	}
}

func (e *testEnv) createElection(t *testing.T) *domain.ElectionInfo {
	t.Helper()

	info, err := e.elections.Create(context.Background(), ports.CreateElectionInput{
		Initiator:   "initiator.near",
		Title:       "Council",
		Description: "Yearly council election",
	})
	require.NoError(t, err)
	return info
}

func (e *testEnv) register(t *testing.T, electionID domain.ElectionID, account domain.AccountID) {
	t.Helper()

	_, err := e.candidacy.Register(context.Background(), ports.RegisterCandidacyInput{
		ElectionID: electionID,
		CallerID:   account,
		Name:       string(account),
		Slogan:     "Vote4Me",
		Goals:      "Better roads",
	})
	require.NoError(t, err)
}
