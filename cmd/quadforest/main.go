package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/aleksaelezovic/quadforest/pkg/quadstore"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: quadforest <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo        - walk through the six end-to-end scenarios")
		fmt.Println("  bench [n]   - insert n random quads and time a pattern query (default 100000)")
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "demo":
		runDemo()
	case "bench":
		n := 100000
		if len(os.Args) >= 3 {
			parsed, err := parseInt(os.Args[2])
			if err != nil {
				log.Fatalf("invalid bench size: %v", err)
			}
			n = parsed
		}
		runBench(n)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func u32(v uint32) *uint32 { return &v }

func runDemo() {
	fmt.Println("=== quadforest demo ===")
	fmt.Println()

	fmt.Println("Scenario 1: add three quads, delete-matches(_, 2, _, _)")
	s1 := quadstore.NewDefault()
	s1.Add(1, 2, 3, 4)
	s1.Add(1, 2, 3, 5)
	s1.Add(1, 9, 3, 4)
	fmt.Printf("  size after three adds: %d\n", s1.Size())
	removed := s1.DeleteMatches(nil, u32(2), nil, nil)
	fmt.Printf("  delete-matches(_, 2, _, _) removed %d; remaining size %d\n", removed, s1.Size())
	fmt.Println()

	fmt.Println("Scenario 2: re-adding an existing quad reports already-present")
	s2 := quadstore.NewDefault()
	first := s2.Add(10, 20, 30, 40)
	second := s2.Add(10, 20, 30, 40)
	fmt.Printf("  first add new=%v, second add new=%v, size=%d\n", first, second, s2.Size())
	fmt.Println()

	fmt.Println("Scenario 3: intersect-list against an empty then a populated store")
	s3 := quadstore.NewDefault()
	packed := []uint32{1, 2, 3, 4}
	fmt.Printf("  intersect-list on empty store: size %d\n", s3.IntersectList(packed).Size())
	s3.Add(1, 2, 3, 4)
	fmt.Printf("  intersect-list after add(1,2,3,4): size %d\n", s3.IntersectList(packed).Size())
	fmt.Println()

	fmt.Println("Scenario 4: union/intersect/difference/contains between two stores")
	a := quadstore.NewDefault()
	a.Add(1, 1, 1, 1)
	a.Add(2, 2, 2, 2)
	b := quadstore.NewDefault()
	b.Add(2, 2, 2, 2)
	b.Add(3, 3, 3, 3)
	union := a.Union(b)
	inter := a.Intersect(b)
	diff := a.Difference(b)
	fmt.Printf("  union size %d, intersect size %d, difference size %d\n", union.Size(), inter.Size(), diff.Size())
	fmt.Printf("  contains(A,B)=%v, contains(union,A)=%v\n", a.Contains(b), union.Contains(a))
	fmt.Println()

	fmt.Println("Scenario 5: 1000 random quads, verify get-all against a brute-force filter")
	s5 := quadstore.NewDefault()
	rng := rand.New(rand.NewSource(1))
	ground := make([][4]uint32, 0, 1000)
	for i := 0; i < 1000; i++ {
		q := [4]uint32{rng.Uint32() % 10, rng.Uint32() % 10, rng.Uint32() % 10, rng.Uint32() % 10}
		if s5.Add(q[0], q[1], q[2], q[3]) {
			ground = append(ground, q)
		}
	}
	mismatches := verifyAgainstGroundTruth(s5, ground)
	fmt.Printf("  verified 16 pattern masks against brute force, mismatches=%d\n", mismatches)
	fmt.Println()

	fmt.Println("Scenario 6: pattern-delete compaction, then re-materialize after re-adding")
	s6 := quadstore.NewDefault()
	for i := uint32(0); i < 100; i++ {
		s6.Add(7, i, i, i)
	}
	s6.EnsureIndexFor(true, false, false, false)
	s6.DeleteMatches(u32(7), nil, nil, nil)
	fmt.Printf("  size after compaction: %d\n", s6.Size())
	s6.Add(7, 0, 0, 0)
	fmt.Printf("  has(7,0,0,0) after re-add: %v\n", s6.Has(7, 0, 0, 0))
}

// verifyAgainstGroundTruth checks get-all under every one of the 16
// present/absent pattern masks, derived from the first quad inserted, and
// returns how many masks returned a different number of quads than a
// brute-force linear filter over ground (the distinct quads inserted).
func verifyAgainstGroundTruth(s *quadstore.Store, ground [][4]uint32) int {
	if len(ground) == 0 {
		return 0
	}
	probe := ground[0]
	mismatches := 0
	for mask := 0; mask < 16; mask++ {
		var subj, pred, obj, graph *uint32
		if mask&1 != 0 {
			subj = u32(probe[0])
		}
		if mask&2 != 0 {
			pred = u32(probe[1])
		}
		if mask&4 != 0 {
			obj = u32(probe[2])
		}
		if mask&8 != 0 {
			graph = u32(probe[3])
		}

		got := s.GetAll(subj, pred, obj, graph)
		want := bruteForce(ground, subj, pred, obj, graph)
		if len(got)/4 != len(want) {
			mismatches++
		}
	}
	return mismatches
}

func bruteForce(ground [][4]uint32, subj, pred, obj, graph *uint32) [][4]uint32 {
	var out [][4]uint32
	for _, q := range ground {
		if subj != nil && *subj != q[0] {
			continue
		}
		if pred != nil && *pred != q[1] {
			continue
		}
		if obj != nil && *obj != q[2] {
			continue
		}
		if graph != nil && *graph != q[3] {
			continue
		}
		out = append(out, q)
	}
	return out
}

func runBench(n int) {
	fmt.Printf("=== quadforest bench: %d quads ===\n", n)
	s := quadstore.NewDefault()
	rng := rand.New(rand.NewSource(1))

	start := time.Now()
	for i := 0; i < n; i++ {
		s.Add(rng.Uint32()%uint32(n), rng.Uint32()%10, rng.Uint32()%10, rng.Uint32()%10)
	}
	insertElapsed := time.Since(start)
	fmt.Printf("  inserted %d quads (size %d) in %s\n", n, s.Size(), insertElapsed)

	probe := uint32(5)
	start = time.Now()
	count := s.MatchCount(nil, &probe, nil, nil)
	queryElapsed := time.Since(start)
	fmt.Printf("  match-count(_, %d, _, _) = %d in %s (secondaries materialized: %d)\n",
		probe, count, queryElapsed, s.NumberOfMaterializedSecondaries())
}
