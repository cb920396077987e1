package kv

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

var _ = Describe("ElectionRepository", func() {

	var store ports.ElectionStore
	ctx := context.Background()
	start := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)

	info := domain.ElectionInfo{
		ID:           42,
		Initiator:    "initiator.near",
		CreationDate: start.Add(-24 * time.Hour),
		StartDate:    start,
		EndDate:      start.Add(6 * 24 * time.Hour),
		Title:        "Council",
		Description:  "Yearly council election",
	}
	alice := domain.Candidate{AccountID: "a.near", RegistrationDate: info.CreationDate, Name: "Alice", Slogan: "A", Goals: "Roads"}
	bob := domain.Candidate{AccountID: "b.near", RegistrationDate: info.CreationDate, Name: "Bob", Slogan: "B", Goals: "Parks"}

	update := func(fn func(repo ports.ElectionRepository) error) {
		ExpectWithOffset(1, store.Update(ctx, fn)).To(Succeed())
	}

	BeforeEach(func() {
		store = NewElectionStore(memory.NewStore())
	})

	It("implements the ElectionRepository interface", func() {
		var _ = ports.ElectionRepository(NewElectionRepository(mapKV{}))
	})

	Describe("#GetElectionInfo", func() {
		It("returns ErrElectionNotFound for an unknown id", func() {
			err := store.View(ctx, func(repo ports.ElectionRepository) error {
				_, err := repo.GetElectionInfo(ctx, 999)
				return err
			})
			Expect(err).To(MatchError(domain.ErrElectionNotFound))
		})

		It("returns a saved election", func() {
			update(func(repo ports.ElectionRepository) error {
				return repo.SaveElection(ctx, &info)
			})

			Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
				got, err := repo.GetElectionInfo(ctx, info.ID)
				Expect(err).To(Succeed())
				Expect(*got).To(Equal(info))
				Expect(repo.ElectionExists(ctx, info.ID)).To(BeTrue())
				Expect(repo.ElectionExists(ctx, info.ID+1)).To(BeFalse())
				return nil
			})).To(Succeed())
		})
	})

	Describe("#ListElectionInfos", func() {
		It("lists every saved election once", func() {
			second := info
			second.ID = 43
			update(func(repo ports.ElectionRepository) error {
				Expect(repo.SaveElection(ctx, &info)).To(Succeed())
				Expect(repo.SaveElection(ctx, &second)).To(Succeed())
				return repo.SaveElection(ctx, &info)
			})

			Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
				Expect(repo.ListElectionInfos(ctx)).To(Equal([]domain.ElectionInfo{info, second}))
				return nil
			})).To(Succeed())
		})
	})

	Describe("candidates and votes", func() {
		BeforeEach(func() {
			update(func(repo ports.ElectionRepository) error {
				Expect(repo.SaveElection(ctx, &info)).To(Succeed())
				Expect(repo.SaveCandidate(ctx, info.ID, &alice)).To(Succeed())
				return repo.SaveCandidate(ctx, info.ID, &bob)
			})
		})

		It("lists candidates in registration order", func() {
			Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
				Expect(repo.ListCandidates(ctx, info.ID)).To(Equal([]domain.Candidate{alice, bob}))
				Expect(repo.HasCandidate(ctx, info.ID, "a.near")).To(BeTrue())
				Expect(repo.HasCandidate(ctx, info.ID, "c.near")).To(BeFalse())
				return nil
			})).To(Succeed())
		})

		It("files votes under their candidate only", func() {
			v1 := domain.Vote{AccountID: "v1", Date: start, CandidateID: "a.near", Comment: "one", Donation: 10}
			v2 := domain.Vote{AccountID: "v2", Date: start, CandidateID: "b.near", Comment: "two"}
			v3 := domain.Vote{AccountID: "v3", Date: start, CandidateID: "a.near", Comment: "three", Donation: 1}
			update(func(repo ports.ElectionRepository) error {
				for _, v := range []domain.Vote{v1, v2, v3} {
					v := v
					Expect(repo.SaveVote(ctx, info.ID, &v)).To(Succeed())
				}
				return nil
			})

			Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
				Expect(repo.ListVotes(ctx, info.ID, "a.near")).To(Equal([]domain.Vote{v1, v3}))
				Expect(repo.ListVotes(ctx, info.ID, "b.near")).To(Equal([]domain.Vote{v2}))
				Expect(repo.HasVoted(ctx, info.ID, "v2")).To(BeTrue())
				Expect(repo.HasVoted(ctx, info.ID, "v4")).To(BeFalse())
				return nil
			})).To(Succeed())
		})

		It("loads a consistent aggregate", func() {
			vote := domain.Vote{AccountID: "v1", Date: start, CandidateID: "b.near"}
			update(func(repo ports.ElectionRepository) error {
				return repo.SaveVote(ctx, info.ID, &vote)
			})

			Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
				election, err := repo.LoadElection(ctx, info.ID)
				Expect(err).To(Succeed())
				Expect(election.Info).To(Equal(info))
				Expect(election.Candidates).To(Equal([]domain.Candidate{alice, bob}))
				Expect(election.CandidateIDs.ToSlice()).To(ConsistOf(domain.AccountID("a.near"), domain.AccountID("b.near")))
				Expect(election.VotesByCandidate).To(HaveKeyWithValue(domain.AccountID("b.near"), []domain.Vote{vote}))
				Expect(election.VotesByCandidate).NotTo(HaveKey(domain.AccountID("a.near")))
				Expect(election.HasVoted("v1")).To(BeTrue())
				Expect(election.Validate()).To(Succeed())
				return nil
			})).To(Succeed())
		})

		It("keeps each election's state separate", func() {
			other := info
			other.ID = 7
			update(func(repo ports.ElectionRepository) error {
				return repo.SaveElection(ctx, &other)
			})

			Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
				Expect(repo.ListCandidates(ctx, other.ID)).To(BeEmpty())
				Expect(repo.HasCandidate(ctx, other.ID, "a.near")).To(BeFalse())
				return nil
			})).To(Succeed())
		})
	})

	It("discards writes of a failed transition", func() {
		boom := errors.New("boom")
		err := store.Update(ctx, func(repo ports.ElectionRepository) error {
			Expect(repo.SaveElection(ctx, &info)).To(Succeed())
			Expect(repo.ElectionExists(ctx, info.ID)).To(BeTrue())
			return boom
		})
		Expect(err).To(MatchError(boom))

		Expect(store.View(ctx, func(repo ports.ElectionRepository) error {
			Expect(repo.ElectionExists(ctx, info.ID)).To(BeFalse())
			Expect(repo.ListElectionInfos(ctx)).To(BeEmpty())
			return nil
		})).To(Succeed())
	})

	It("rejects writes inside a view", func() {
		err := store.View(ctx, func(repo ports.ElectionRepository) error {
			return repo.SaveElection(ctx, &info)
		})
		Expect(err).To(HaveOccurred())
	})
})
