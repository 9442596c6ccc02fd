// Package pairing builds the deterministic queue of team pairings a
// session pops from on each Start, per spec §4.4.
package pairing

import "bughouse/internal/ids"

// Pairing is one ((a,b),(c,d)) team assignment: team 1 is (Team1A,
// Team1B), team 2 is (Team2A, Team2B), in the a/b/c/d seat order
// internal/game.Participants expects.
type Pairing struct {
	Team1A, Team1B ids.UserId
	Team2A, Team2B ids.UserId
}

// Build generates the full deterministic queue for the given
// participant ids: every 2-vs-2 team split, in both team-1/team-2
// orders, times the four color permutations ((a,b),(c,d)),
// ((a,b),(d,c)), ((b,a),(c,d)), ((b,a),(d,c)) per split. For N=4 this
// yields 3 splits x 2 team orders x 4 = 24 pairings.
func Build(participants []ids.UserId) []Pairing {
	var out []Pairing
	n := len(participants)

	for _, team1 := range combinations(n, 2) {
		a, b := participants[team1[0]], participants[team1[1]]
		remainder := exclude(n, team1)

		for _, team2 := range combinations(len(remainder), 2) {
			c, d := participants[remainder[team2[0]]], participants[remainder[team2[1]]]

			out = append(out,
				Pairing{Team1A: a, Team1B: b, Team2A: c, Team2B: d},
				Pairing{Team1A: a, Team1B: b, Team2A: d, Team2B: c},
				Pairing{Team1A: b, Team1B: a, Team2A: c, Team2B: d},
				Pairing{Team1A: b, Team1B: a, Team2A: d, Team2B: c},
			)
		}
	}

	return out
}

// combinations enumerates every way to choose k indices from [0,n) in
// increasing order.
func combinations(n, k int) [][]int {
	var out [][]int
	combo := make([]int, k)

	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			picked := make([]int, k)
			copy(picked, combo)
			out = append(out, picked)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)

	return out
}

// exclude returns the indices in [0,n) not present in used, preserving
// order.
func exclude(n int, used []int) []int {
	skip := make(map[int]bool, len(used))
	for _, u := range used {
		skip[u] = true
	}
	out := make([]int, 0, n-len(used))
	for i := 0; i < n; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

// Queue holds a built pairing list and a read cursor; Start pops the
// head and advances it.
type Queue struct {
	pairings []Pairing
	next     int
}

// NewQueue builds the queue for the given participants immediately;
// spec §4.4 fills the queue once, on the first Start after GameState
// leaves Starting.
func NewQueue(participants []ids.UserId) *Queue {
	return &Queue{pairings: Build(participants)}
}

// Pop returns the next pairing and advances the cursor, or ok=false
// once the queue is exhausted.
func (q *Queue) Pop() (Pairing, bool) {
	if q.next >= len(q.pairings) {
		return Pairing{}, false
	}
	p := q.pairings[q.next]
	q.next++
	return p, true
}

// Len reports how many pairings remain unpopped.
func (q *Queue) Len() int {
	return len(q.pairings) - q.next
}
