package conversation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// fieldHandler captures one required candidate field from a user turn. The
// machine walks the ordered handler list and feeds each turn to the first
// field that is still empty; a capture that fails to validate re-prompts
// without consuming the slot.
type fieldHandler struct {
	name    string
	filled  func(c *Candidate) bool
	capture func(ctx context.Context, s *Session, input string) string
}

func (m *Machine) buildFields() []fieldHandler {
	return []fieldHandler{
		{
			name:   "email",
			filled: func(c *Candidate) bool { return c.Email != "" },
			capture: func(_ context.Context, s *Session, input string) string {
				email := m.deps.Extractor.Email(input)
				if email == "" {
					return "That didn't look like a valid email address. Please try again."
				}
				s.Candidate.Email = email
				return "Got it! Now, what is your phone number?"
			},
		},
		{
			name:   "phone",
			filled: func(c *Candidate) bool { return c.Phone != "" },
			capture: func(_ context.Context, s *Session, input string) string {
				phone := m.deps.Extractor.Phone(input)
				if phone == "" {
					return "That didn't look like a phone number. Please try again."
				}
				s.Candidate.Phone = phone
				return "Great! How many years of experience do you have?"
			},
		},
		{
			name:   "experience",
			filled: func(c *Candidate) bool { return c.Experience != "" },
			capture: func(_ context.Context, s *Session, input string) string {
				s.Candidate.Experience = strings.TrimSpace(input)
				return "Nice! What position are you applying for?"
			},
		},
		{
			name:   "position",
			filled: func(c *Candidate) bool { return c.Position != "" },
			capture: func(_ context.Context, s *Session, input string) string {
				s.Candidate.Position = strings.TrimSpace(input)
				return "What is your location?"
			},
		},
		{
			name:   "location",
			filled: func(c *Candidate) bool { return c.Location != "" },
			capture: func(_ context.Context, s *Session, input string) string {
				s.Candidate.Location = strings.TrimSpace(input)
				return "Almost done! Please list your technical skills and tools."
			},
		},
		{
			name:    "tech_stack",
			filled:  func(c *Candidate) bool { return len(c.TechStack) > 0 },
			capture: m.captureTechStack,
		},
	}
}

// captureTechStack is the last collection step: it resolves the skill tags,
// generates the question set, and moves the session into the questioning
// state, emitting the first question.
func (m *Machine) captureTechStack(ctx context.Context, s *Session, input string) string {
	skills := m.deps.Extractor.Skills(input)

	if len(skills) == 0 && m.deps.Heuristic != nil {
		skills = m.deps.Heuristic.Infer(s.Candidate.Position)
		if len(skills) > 0 {
			m.logger.Debug("skills inferred from position",
				zap.String("session_id", s.ID),
				zap.String("heuristic", m.deps.Heuristic.Name()),
				zap.Strings("skills", skills),
			)
		}
	}

	if len(skills) == 0 {
		return "I couldn't detect any skills I recognize. Please list them clearly, e.g. Python, React, SQL."
	}

	s.Candidate.TechStack = skills
	s.Candidate.Responses = make(map[string]Response)
	s.Questions = m.deps.Questions.Generate(ctx, skills, m.questionCount)
	s.Cursor = 0
	s.State = StateTechQuestions

	m.logger.Info("question set generated",
		zap.String("session_id", s.ID),
		zap.Strings("skills", skills),
		zap.Int("questions", len(s.Questions)),
	)

	return fmt.Sprintf("Skills noted: %s\n\nQ1: %s", strings.Join(skills, ", "), s.Questions[0])
}
