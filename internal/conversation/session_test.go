package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := NewSession()

	require.NotEmpty(t, s.ID)
	require.Equal(t, StateGreeting, s.State)
	require.NotNil(t, s.Candidate)
	require.False(t, s.StartedAt.IsZero())
	require.NotEqual(t, s.ID, NewSession().ID)
}

func TestSnapshotDeepCopies(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.Candidate.Name = "Jane Doe"
	s.Candidate.TechStack = []string{"docker", "python"}
	s.Candidate.Responses = map[string]Response{
		"q1": {Answer: "a1", Score: 4, Feedback: "good"},
	}
	s.CompletedAt = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	snapshot := s.Snapshot()
	require.Equal(t, s.ID, snapshot.SessionID)
	require.Equal(t, s.CompletedAt, snapshot.Timestamp)

	// Mutating the session afterwards must not leak into the snapshot.
	s.Candidate.TechStack[0] = "changed"
	s.Candidate.Responses["q1"] = Response{Answer: "rewritten"}

	require.Equal(t, []string{"docker", "python"}, snapshot.TechStack)
	require.Equal(t, "a1", snapshot.Responses["q1"].Answer)
}

func TestSnapshotDefaultsTimestamp(t *testing.T) {
	t.Parallel()

	s := NewSession()
	snapshot := s.Snapshot()

	require.False(t, snapshot.Timestamp.IsZero())
}

func TestStateTerminal(t *testing.T) {
	t.Parallel()

	require.True(t, StateCompleted.Terminal())
	require.True(t, StateEnded.Terminal())
	require.False(t, StateGreeting.Terminal())
	require.False(t, StateCollectingInfo.Terminal())
	require.False(t, StateTechQuestions.Terminal())
}
