package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Soumik-05/talentscout/internal/interview"

	"go.uber.org/zap"
)

const (
	// GreetingMessage opens every session before the first user turn.
	GreetingMessage = "Welcome to TalentScout, the AI hiring assistant!\n" +
		"I'll collect a few details and then ask interview questions tailored to your skills.\n" +
		"Please tell me your full name to begin. (Type 'bye' at any time to exit.)"

	// FarewellMessage is emitted when an ending keyword cuts the session short.
	FarewellMessage = "Thanks for chatting with TalentScout. Goodbye!"

	rephraseMessage  = "Could you rephrase that?"
	completedMessage = "This interview is already finished. Thanks again for your time!"
)

// DefaultEndingKeywords terminate the session from any non-terminal state.
var DefaultEndingKeywords = []string{"bye", "exit", "quit", "end", "stop"}

// SkillExtractor pulls structured fields out of raw turn text.
type SkillExtractor interface {
	Email(text string) string
	Phone(text string) string
	Skills(text string) []string
}

// QuestionGenerator produces the interview question set for a skill list.
type QuestionGenerator interface {
	Generate(ctx context.Context, skills []string, count int) []string
}

// AnswerEvaluator scores a single question/answer pair.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question, answer string) interview.Assessment
}

// Sink durably stores a finalized interview snapshot.
type Sink interface {
	Save(snapshot *Snapshot) error
}

// Deps aggregates the collaborators a Machine routes turns to.
type Deps struct {
	Extractor SkillExtractor
	Questions QuestionGenerator
	Evaluator AnswerEvaluator
	Heuristic Heuristic
	Sink      Sink
	Logger    *zap.Logger
}

// Machine drives a session through the interview script: it decides what to
// ask next, pulls structured fields out of each turn, and sequences the
// generated questions and their scoring. Turn processing is strictly
// sequential within a session; the machine keeps no per-session state of its
// own and can serve any number of sessions.
type Machine struct {
	deps          Deps
	logger        *zap.Logger
	questionCount int
	fields        []fieldHandler
	endingWords   map[string]struct{}
}

// NewMachine creates a Machine with the provided collaborators. A
// non-positive questionCount falls back to the default question count.
func NewMachine(deps Deps, questionCount int) *Machine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if questionCount <= 0 {
		questionCount = interview.DefaultQuestionCount
	}

	m := &Machine{
		deps:          deps,
		logger:        deps.Logger,
		questionCount: questionCount,
		endingWords:   make(map[string]struct{}, len(DefaultEndingKeywords)),
	}
	for _, keyword := range DefaultEndingKeywords {
		m.endingWords[keyword] = struct{}{}
	}
	m.fields = m.buildFields()

	return m
}

// Turn processes one user input against the session and returns the reply
// text. The session's state, candidate record, and question cursor are
// mutated in place. Turn never fails: every collaborator error degrades to a
// fallback value inside the component that hit it.
func (m *Machine) Turn(ctx context.Context, s *Session, input string) string {
	// The ending check outranks whatever the current state would do.
	if !s.State.Terminal() && m.wantsToEnd(input) {
		previous := s.State
		s.State = StateEnded
		m.logger.Info("session ended by keyword",
			zap.String("session_id", s.ID),
			zap.String("from_state", string(previous)),
		)
		return FarewellMessage
	}

	switch s.State {
	case StateGreeting:
		return m.greet(s, input)
	case StateCollectingInfo:
		return m.collectInfo(ctx, s, input)
	case StateTechQuestions:
		return m.handleQuestion(ctx, s, input)
	case StateCompleted:
		return completedMessage
	case StateEnded:
		return FarewellMessage
	default:
		return rephraseMessage
	}
}

func (m *Machine) greet(s *Session, input string) string {
	s.Candidate.Name = strings.TrimSpace(input)
	s.State = StateCollectingInfo

	m.logger.Debug("candidate named",
		zap.String("session_id", s.ID),
		zap.String("state", string(s.State)),
	)

	return fmt.Sprintf("Nice to meet you, %s! What is your email address?", s.Candidate.Name)
}

func (m *Machine) collectInfo(ctx context.Context, s *Session, input string) string {
	for _, field := range m.fields {
		if field.filled(s.Candidate) {
			continue
		}

		reply := field.capture(ctx, s, input)

		m.logger.Debug("collection turn",
			zap.String("session_id", s.ID),
			zap.String("field", field.name),
			zap.Bool("captured", field.filled(s.Candidate)),
		)

		return reply
	}

	// Every field is already filled; nothing left to collect.
	s.State = StateTechQuestions
	return "All details collected, moving on to the technical questions."
}

func (m *Machine) handleQuestion(ctx context.Context, s *Session, input string) string {
	if s.Cursor >= len(s.Questions) {
		return rephraseMessage
	}

	question := s.Questions[s.Cursor]
	assessment := m.deps.Evaluator.Evaluate(ctx, question, input)
	s.Candidate.Responses[question] = Response{
		Answer:   input,
		Score:    assessment.Score,
		Feedback: assessment.Feedback,
	}
	s.Cursor++

	m.logger.Debug("answer recorded",
		zap.String("session_id", s.ID),
		zap.Int("question_index", s.Cursor-1),
		zap.Int("score", assessment.Score),
	)

	if s.Cursor < len(s.Questions) {
		return fmt.Sprintf("Thanks! (scored %d/5)\n\nQ%d: %s", assessment.Score, s.Cursor+1, s.Questions[s.Cursor])
	}

	return m.complete(s)
}

func (m *Machine) complete(s *Session) string {
	s.State = StateCompleted
	s.CompletedAt = time.Now()

	if m.deps.Sink != nil {
		if err := m.deps.Sink.Save(s.Snapshot()); err != nil {
			m.logger.Warn("saving candidate record failed",
				zap.String("session_id", s.ID),
				zap.Error(err),
			)
		}
	}

	m.logger.Info("interview completed",
		zap.String("session_id", s.ID),
		zap.Int("answered_questions", len(s.Candidate.Responses)),
	)

	return fmt.Sprintf("Congratulations %s, you finished the interview! We'll review your answers and get back to you.", s.Candidate.Name)
}

// wantsToEnd matches ending keywords against whole words only, so inputs
// like "Backend Engineer" do not trip on "end".
func (m *Machine) wantsToEnd(input string) bool {
	words := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range words {
		if _, ok := m.endingWords[word]; ok {
			return true
		}
	}
	return false
}
