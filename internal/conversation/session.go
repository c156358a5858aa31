package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Response records the outcome of one answered interview question. A zero
// score marks a failed evaluation, not a bad answer.
type Response struct {
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Candidate accumulates the structured data gathered over a session. Fields
// are filled incrementally in collection order and must be treated as
// read-only once the session reaches a terminal state.
type Candidate struct {
	Name       string
	Email      string
	Phone      string
	Experience string
	Position   string
	Location   string
	TechStack  []string
	Responses  map[string]Response
}

// Session is the context object owning all per-conversation state: the
// candidate record, the current machine state, and the generated question
// set with its cursor. One session serves exactly one candidate.
type Session struct {
	ID        string
	State     State
	Candidate *Candidate

	// Questions and Cursor form the question set: Cursor is the next
	// unanswered index and always sits in [0, len(Questions)].
	Questions []string
	Cursor    int

	StartedAt   time.Time
	CompletedAt time.Time
}

// NewSession creates a fresh session in the greeting state.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		State:     StateGreeting,
		Candidate: &Candidate{},
		StartedAt: time.Now(),
	}
}

// Snapshot is the finalized, persistence-ready copy of a finished interview.
type Snapshot struct {
	SessionID  string              `json:"session_id"`
	Timestamp  time.Time           `json:"timestamp"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Experience string              `json:"experience"`
	Position   string              `json:"position"`
	Location   string              `json:"location"`
	TechStack  []string            `json:"tech_stack"`
	Responses  map[string]Response `json:"responses"`
}

// Snapshot deep-copies the session's candidate data so the stored record
// stays stable regardless of what happens to the session afterwards.
func (s *Session) Snapshot() *Snapshot {
	if s == nil || s.Candidate == nil {
		return nil
	}

	completed := s.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}

	stack := make([]string, len(s.Candidate.TechStack))
	copy(stack, s.Candidate.TechStack)

	responses := make(map[string]Response, len(s.Candidate.Responses))
	for question, response := range s.Candidate.Responses {
		responses[question] = response
	}

	return &Snapshot{
		SessionID:  s.ID,
		Timestamp:  completed,
		Name:       s.Candidate.Name,
		Email:      s.Candidate.Email,
		Phone:      s.Candidate.Phone,
		Experience: s.Candidate.Experience,
		Position:   s.Candidate.Position,
		Location:   s.Candidate.Location,
		TechStack:  stack,
		Responses:  responses,
	}
}
