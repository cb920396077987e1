package kv

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var _ = Describe("Set", func() {

	var store mapKV
	var set *Set[string]
	ctx := context.Background()

	BeforeEach(func() {
		store = mapKV{}
		set = NewSet[string](store, "names")
	})

	It("is empty before anything is added", func() {
		Expect(set.Len(ctx)).To(BeZero())
		Expect(set.Values(ctx)).To(BeEmpty())
		Expect(set.Has(ctx, "alice")).To(BeFalse())
	})

	Describe("#Add", func() {
		It("reports whether the member was absent", func() {
			Expect(set.Add(ctx, "alice")).To(BeTrue())
			Expect(set.Add(ctx, "alice")).To(BeFalse())
			Expect(set.Len(ctx)).To(Equal(uint64(1)))
		})

		It("keeps members enumerable in insertion order", func() {
			for _, name := range []string{"carol", "alice", "bob", "alice"} {
				_, err := set.Add(ctx, name)
				Expect(err).To(Succeed())
			}
			Expect(set.Values(ctx)).To(Equal([]string{"carol", "alice", "bob"}))
			Expect(set.Has(ctx, "bob")).To(BeTrue())
			Expect(set.Has(ctx, "dave")).To(BeFalse())
		})

		It("stores length, element and membership keys under the prefix", func() {
			_, err := set.Add(ctx, "alice")
			Expect(err).To(Succeed())
			Expect(store).To(HaveKeyWithValue("names/len", []byte("1")))
			Expect(store).To(HaveKeyWithValue("names/e/0", []byte(`"alice"`)))
			Expect(store).To(HaveKeyWithValue(`names/m/"alice"`, []byte("0")))
		})
	})

	It("does not mix members of sets with different prefixes", func() {
		other := NewSet[string](store, "names-other")
		_, err := set.Add(ctx, "alice")
		Expect(err).To(Succeed())
		Expect(other.Has(ctx, "alice")).To(BeFalse())
		Expect(other.Len(ctx)).To(BeZero())
	})

	It("fails on a corrupt length", func() {
		store["names/len"] = []byte("many")
		_, err := set.Len(ctx)
		Expect(err).To(MatchError(ContainSubstring("corrupt set length")))
	})

	It("fails when an enumerated element is missing", func() {
		store["names/len"] = []byte("2")
		store["names/e/0"] = []byte(`"alice"`)
		_, err := set.Values(ctx)
		Expect(err).To(MatchError(ports.ErrKeyNotFound))
	})
})

var _ = Describe("Map", func() {

	var store mapKV
	var m *Map[uint32, point]
	ctx := context.Background()

	BeforeEach(func() {
		store = mapKV{}
		m = NewMap[uint32, point](store, "points")
	})

	It("returns values that were set", func() {
		Expect(m.Set(ctx, 7, point{X: 1, Y: 2})).To(Succeed())

		v, found, err := m.Get(ctx, 7)
		Expect(err).To(Succeed())
		Expect(found).To(BeTrue())
		Expect(v).To(Equal(point{X: 1, Y: 2}))
		Expect(m.Contains(ctx, 7)).To(BeTrue())
	})

	It("overwrites existing values", func() {
		Expect(m.Set(ctx, 7, point{X: 1})).To(Succeed())
		Expect(m.Set(ctx, 7, point{X: 2})).To(Succeed())
		Expect(m.GetOrFail(ctx, 7)).To(Equal(point{X: 2}))
	})

	It("reports absent keys", func() {
		_, found, err := m.Get(ctx, 8)
		Expect(err).To(Succeed())
		Expect(found).To(BeFalse())
		Expect(m.Contains(ctx, 8)).To(BeFalse())

		_, err = m.GetOrFail(ctx, 8)
		Expect(err).To(MatchError(ports.ErrKeyNotFound))
	})

	It("fails on undecodable values", func() {
		store["points/9"] = []byte("{")
		_, _, err := m.Get(ctx, 9)
		Expect(err).To(MatchError(ContainSubstring("failed to decode value")))
	})
})

var _ = Describe("SetMap", func() {

	var sm *SetMap[string, point]
	ctx := context.Background()

	BeforeEach(func() {
		sm = NewSetMap[string, point](mapKV{}, "groups")
	})

	It("returns an empty slice for an absent key", func() {
		values, err := sm.Get(ctx, "none")
		Expect(err).To(Succeed())
		Expect(values).NotTo(BeNil())
		Expect(values).To(BeEmpty())
		Expect(sm.Contains(ctx, "none")).To(BeFalse())
	})

	It("adds distinct values per key", func() {
		Expect(sm.Add(ctx, "a", point{X: 1})).To(BeTrue())
		Expect(sm.Add(ctx, "a", point{X: 2})).To(BeTrue())
		Expect(sm.Add(ctx, "a", point{X: 1})).To(BeFalse())
		Expect(sm.Add(ctx, "b", point{X: 1})).To(BeTrue())

		Expect(sm.Get(ctx, "a")).To(Equal([]point{{X: 1}, {X: 2}}))
		Expect(sm.Get(ctx, "b")).To(Equal([]point{{X: 1}}))
		Expect(sm.Contains(ctx, "a")).To(BeTrue())
	})
})
