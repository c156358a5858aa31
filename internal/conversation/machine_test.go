package conversation_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Soumik-05/talentscout/internal/conversation"
	"github.com/Soumik-05/talentscout/internal/interview"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubQuestions struct {
	calls      int
	lastSkills []string
	lastCount  int
}

func (s *stubQuestions) Generate(_ context.Context, skills []string, count int) []string {
	s.calls++
	s.lastSkills = skills
	s.lastCount = count

	questions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, fmt.Sprintf("(%s) Question %d? (open)", skills[0], i+1))
	}
	return questions
}

type stubEvaluator struct {
	assessment interview.Assessment
	calls      int
}

func (s *stubEvaluator) Evaluate(_ context.Context, _, _ string) interview.Assessment {
	s.calls++
	return s.assessment
}

type stubSink struct {
	saved []*conversation.Snapshot
	err   error
}

func (s *stubSink) Save(snapshot *conversation.Snapshot) error {
	s.saved = append(s.saved, snapshot)
	return s.err
}

type fixture struct {
	machine   *conversation.Machine
	session   *conversation.Session
	questions *stubQuestions
	evaluator *stubEvaluator
	sink      *stubSink
}

func newFixture() *fixture {
	questions := &stubQuestions{}
	evaluator := &stubEvaluator{assessment: interview.Assessment{Score: 4, Feedback: "good"}}
	sink := &stubSink{}

	machine := conversation.NewMachine(conversation.Deps{
		Extractor: interview.NewExtractor(nil),
		Questions: questions,
		Evaluator: evaluator,
		Heuristic: conversation.NewPositionHeuristic(nil),
		Sink:      sink,
		Logger:    zap.NewNop(),
	}, 5)

	return &fixture{
		machine:   machine,
		session:   conversation.NewSession(),
		questions: questions,
		evaluator: evaluator,
		sink:      sink,
	}
}

// turns drives the fixture through the happy-path collection sequence up to
// and including the skills turn.
var collectionTurns = []string{
	"Jane Doe",
	"jane@x.com",
	"+1 555-123-4567",
	"3 years",
	"Backend Engineer",
	"Berlin",
	"I know Python and Docker",
}

func (f *fixture) drive(t *testing.T, turns []string) string {
	t.Helper()

	var reply string
	for _, turn := range turns {
		reply = f.machine.Turn(context.Background(), f.session, turn)
	}
	return reply
}

func TestEndingKeywordFromAnyState(t *testing.T) {
	t.Parallel()

	setups := map[string][]string{
		"greeting":        nil,
		"collecting_info": {"Jane Doe", "jane@x.com"},
		"tech_questions":  collectionTurns,
	}

	for name, turns := range setups {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			f.drive(t, turns)

			reply := f.machine.Turn(context.Background(), f.session, "ok, bye")

			require.Equal(t, conversation.StateEnded, f.session.State)
			require.Equal(t, conversation.FarewellMessage, reply)
		})
	}
}

func TestEndingKeywordsMatchWholeWordsOnly(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.drive(t, []string{"Jane Doe", "jane@x.com", "+1 555-123-4567", "3 years"})

	// "Backend" contains "end" but must not terminate the session.
	f.machine.Turn(context.Background(), f.session, "Backend Engineer")

	require.Equal(t, conversation.StateCollectingInfo, f.session.State)
	require.Equal(t, "Backend Engineer", f.session.Candidate.Position)
}

func TestGreetingCapturesNameVerbatim(t *testing.T) {
	t.Parallel()

	f := newFixture()
	reply := f.machine.Turn(context.Background(), f.session, "  Jane Doe  ")

	require.Equal(t, conversation.StateCollectingInfo, f.session.State)
	require.Equal(t, "Jane Doe", f.session.Candidate.Name)
	require.Contains(t, reply, "Jane Doe")
	require.Contains(t, reply, "email")
}

func TestCollectionHappyPath(t *testing.T) {
	t.Parallel()

	f := newFixture()
	reply := f.drive(t, collectionTurns)

	require.Equal(t, conversation.StateTechQuestions, f.session.State)

	c := f.session.Candidate
	require.Equal(t, "Jane Doe", c.Name)
	require.Equal(t, "jane@x.com", c.Email)
	require.Equal(t, "+15551234567", c.Phone)
	require.Equal(t, "3 years", c.Experience)
	require.Equal(t, "Backend Engineer", c.Position)
	require.Equal(t, "Berlin", c.Location)
	require.Equal(t, []string{"docker", "python"}, c.TechStack)

	require.Equal(t, 1, f.questions.calls)
	require.Equal(t, []string{"docker", "python"}, f.questions.lastSkills)
	require.Equal(t, 5, f.questions.lastCount)
	require.Len(t, f.session.Questions, 5)
	require.Zero(t, f.session.Cursor)

	require.Contains(t, reply, "Q1:")
	require.Contains(t, reply, f.session.Questions[0])
}

func TestInvalidEmailReprompts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.machine.Turn(context.Background(), f.session, "Jane Doe")

	reply := f.machine.Turn(context.Background(), f.session, "my email is janedotcom")

	require.Equal(t, conversation.StateCollectingInfo, f.session.State)
	require.Empty(t, f.session.Candidate.Email)
	require.Contains(t, reply, "email")

	// The slot is still pending, so a valid address is accepted next turn.
	f.machine.Turn(context.Background(), f.session, "jane@x.com")
	require.Equal(t, "jane@x.com", f.session.Candidate.Email)
}

func TestInvalidPhoneReprompts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.drive(t, []string{"Jane Doe", "jane@x.com"})

	reply := f.machine.Turn(context.Background(), f.session, "just call me")

	require.Equal(t, conversation.StateCollectingInfo, f.session.State)
	require.Empty(t, f.session.Candidate.Phone)
	require.Contains(t, reply, "phone")
}

func TestPositionHeuristicFallback(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.drive(t, []string{"Jane Doe", "jane@x.com", "+1 555-123-4567", "5 years", "Senior Product Manager", "Remote"})

	reply := f.machine.Turn(context.Background(), f.session, "mostly roadmaps and stakeholder work")

	require.Equal(t, conversation.StateTechQuestions, f.session.State)
	require.Equal(t, []string{"product"}, f.session.Candidate.TechStack)
	require.Contains(t, reply, "product")
}

func TestUnrecognizedSkillsReprompt(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.drive(t, []string{"Jane Doe", "jane@x.com", "+1 555-123-4567", "2 years", "Accountant", "Oslo"})

	reply := f.machine.Turn(context.Background(), f.session, "bookkeeping mostly")

	require.Equal(t, conversation.StateCollectingInfo, f.session.State)
	require.Empty(t, f.session.Candidate.TechStack)
	require.Contains(t, reply, "skills")
	require.Zero(t, f.questions.calls)
}

func TestAnsweringAllQuestionsCompletes(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.drive(t, collectionTurns)

	var reply string
	for i := 0; i < 4; i++ {
		reply = f.machine.Turn(context.Background(), f.session, fmt.Sprintf("answer %d", i+1))
		require.Equal(t, conversation.StateTechQuestions, f.session.State)
		require.Contains(t, reply, fmt.Sprintf("Q%d:", i+2))
		require.Contains(t, reply, "scored 4/5")
	}

	reply = f.machine.Turn(context.Background(), f.session, "final answer")

	require.Equal(t, conversation.StateCompleted, f.session.State)
	require.Contains(t, reply, "Jane Doe")
	require.Equal(t, 5, f.evaluator.calls)
	require.Len(t, f.session.Candidate.Responses, 5)

	for question, response := range f.session.Candidate.Responses {
		require.NotEmpty(t, question)
		require.NotEmpty(t, response.Answer)
		require.GreaterOrEqual(t, response.Score, 0)
		require.LessOrEqual(t, response.Score, 5)
	}

	require.Len(t, f.sink.saved, 1)
	snapshot := f.sink.saved[0]
	require.Equal(t, f.session.ID, snapshot.SessionID)
	require.Equal(t, "jane@x.com", snapshot.Email)
	require.Len(t, snapshot.Responses, 5)
	require.False(t, snapshot.Timestamp.IsZero())
}

func TestEvaluationFailureIsRecordedNotFatal(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.evaluator.assessment = interview.Assessment{Score: 0, Feedback: "Error: model unavailable"}
	f.drive(t, collectionTurns)

	reply := f.machine.Turn(context.Background(), f.session, "some answer")

	require.Equal(t, conversation.StateTechQuestions, f.session.State)
	require.Contains(t, reply, "Q2:")

	first := f.session.Questions[0]
	require.Equal(t, 0, f.session.Candidate.Responses[first].Score)
	require.Contains(t, f.session.Candidate.Responses[first].Feedback, "Error:")
}

func TestCompletedStateIsAbsorbing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.drive(t, collectionTurns)
	for i := 0; i < 5; i++ {
		f.machine.Turn(context.Background(), f.session, "answer")
	}
	require.Equal(t, conversation.StateCompleted, f.session.State)

	reply := f.machine.Turn(context.Background(), f.session, "hello again")

	require.Equal(t, conversation.StateCompleted, f.session.State)
	require.Contains(t, reply, "finished")
	require.Len(t, f.sink.saved, 1)
}

func TestSinkFailureDoesNotBreakCompletion(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.sink.err = fmt.Errorf("disk full")
	f.drive(t, collectionTurns)

	var reply string
	for i := 0; i < 5; i++ {
		reply = f.machine.Turn(context.Background(), f.session, "answer")
	}

	require.Equal(t, conversation.StateCompleted, f.session.State)
	require.Contains(t, reply, "Congratulations")
}

func TestUnrecognizedStateAsksToRephrase(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.session.State = conversation.State("confused")

	reply := f.machine.Turn(context.Background(), f.session, "anything")

	require.Equal(t, conversation.State("confused"), f.session.State)
	require.Equal(t, "Could you rephrase that?", reply)
}
