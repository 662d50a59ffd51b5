package simulate

import (
	"context"
	"time"
)

// EventKind is what happened in a simulated chat.
type EventKind int

const (
	TypingStarted EventKind = iota + 1
	TypingStopped
	Replied
)

func (k EventKind) String() string {
	switch k {
	case TypingStarted:
		return "typing_started"
	case TypingStopped:
		return "typing_stopped"
	case Replied:
		return "replied"
	}
	return "unknown"
}

// Event is delivered to the emit callback of React.
type Event struct {
	Kind EventKind
	Text string // set for Replied
}

// React plays out one plan from t on real timers, calling emit for each
// event. It returns early with ctx.Err() when ctx is cancelled; no timer
// outlives the call.
func React(ctx context.Context, t Typing, emit func(Event)) error {
	p := t.Next()
	if !p.Show {
		return nil
	}
	if err := sleep(ctx, p.Delay); err != nil {
		return err
	}
	emit(Event{Kind: TypingStarted})
	if err := sleep(ctx, p.Duration); err != nil {
		emit(Event{Kind: TypingStopped})
		return err
	}
	emit(Event{Kind: TypingStopped})
	if p.Reply != "" {
		emit(Event{Kind: Replied, Text: p.Reply})
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
