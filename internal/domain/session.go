package domain

import (
	"time"
)

// Iteration is one generated blueprint plus the input that produced it.
type Iteration struct {
	Version   int        `json:"version"`
	Feedback  string     `json:"feedback"`
	CreatedAt time.Time  `json:"created_at"`
	Blueprint *Blueprint `json:"blueprint"`
}

// Session holds the ordered design history for one client-supplied key.
// The current blueprint is always the last iteration.
type Session struct {
	ID         string      `json:"session_id"`
	Iterations []Iteration `json:"iterations"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Record appends a blueprint to the history and assigns the next version.
func (s *Session) Record(bp *Blueprint, feedback string, now time.Time) Iteration {
	it := Iteration{
		Version:   len(s.Iterations) + 1,
		Feedback:  feedback,
		CreatedAt: now,
		Blueprint: bp,
	}
	s.Iterations = append(s.Iterations, it)
	s.UpdatedAt = now
	return it
}

// Current returns the latest iteration and false when the session is empty.
func (s *Session) Current() (Iteration, bool) {
	if len(s.Iterations) == 0 {
		return Iteration{}, false
	}
	return s.Iterations[len(s.Iterations)-1], true
}
