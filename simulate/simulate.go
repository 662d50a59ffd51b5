// Package simulate supplies the demo behaviour of the social app (peer typing
// indicators, canned replies, game outcomes) behind interfaces, so tests can
// script it and nothing random leaks into stored state.
package simulate

import (
	"math/rand"
	"sync"
	"time"
)

// TypingPlan describes how a simulated peer reacts to one message.
type TypingPlan struct {
	Show     bool          // whether the indicator appears at all
	Delay    time.Duration // before the indicator appears
	Duration time.Duration // how long it stays
	Reply    string        // sent when the indicator clears; empty for none
}

// Typing decides how a peer reacts to each message.
type Typing interface {
	Next() TypingPlan
}

// Outcomes makes the random choices of the games.
type Outcomes interface {
	// Pick returns an index in [0, n).
	Pick(n int) int
	// Win reports whether the player wins a round.
	Win() bool
}

// Random is the production source for both Typing and Outcomes.
type Random struct {
	mu      sync.Mutex
	rng     *rand.Rand
	replies []string
}

// NewRandom returns a Random seeded with seed. Replies default to the
// built-in set.
func NewRandom(seed int64, replies ...string) *Random {
	if len(replies) == 0 {
		replies = DefaultReplies
	}
	return &Random{rng: rand.New(rand.NewSource(seed)), replies: replies}
}

// Next shows the indicator 30% of the time after 1-3s, keeps it for 1-4s and
// replies half the time.
func (r *Random) Next() TypingPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rng.Float64() <= 0.7 {
		return TypingPlan{}
	}
	p := TypingPlan{
		Show:     true,
		Delay:    time.Second + time.Duration(r.rng.Float64()*float64(2*time.Second)),
		Duration: time.Second + time.Duration(r.rng.Float64()*float64(3*time.Second)),
	}
	if r.rng.Float64() > 0.5 {
		p.Reply = r.replies[r.rng.Intn(len(r.replies))]
	}
	return p
}

func (r *Random) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *Random) Win() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() > 0.5
}

// Script replays fixed plans and outcomes, cycling when exhausted.
type Script struct {
	mu    sync.Mutex
	Plans []TypingPlan
	Picks []int
	Wins  []bool

	plan, pick, win int
}

func (s *Script) Next() TypingPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Plans) == 0 {
		return TypingPlan{}
	}
	p := s.Plans[s.plan%len(s.Plans)]
	s.plan++
	return p
}

func (s *Script) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Picks) == 0 || n <= 0 {
		return 0
	}
	v := s.Picks[s.pick%len(s.Picks)]
	s.pick++
	return ((v % n) + n) % n
}

func (s *Script) Win() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Wins) == 0 {
		return false
	}
	v := s.Wins[s.win%len(s.Wins)]
	s.win++
	return v
}

var (
	_ Typing   = (*Random)(nil)
	_ Outcomes = (*Random)(nil)
	_ Typing   = (*Script)(nil)
	_ Outcomes = (*Script)(nil)
)
