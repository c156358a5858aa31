package interview

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/Soumik-05/talentscout/internal/ai"
	"github.com/Soumik-05/talentscout/internal/logger"

	"go.uber.org/zap"
)

//go:embed questions_prompt.md
var questionsPromptTemplate string

const (
	// DefaultQuestionCount is the number of questions generated per interview.
	DefaultQuestionCount = 5

	questionsTemperature = 0.7
	questionsMaxTokens   = 400
)

var ordinalPrefix = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// QuestionGenerator produces a fixed-size interview question set for a list
// of skill tags via the language model, degrading to deterministic fallback
// questions when the model misbehaves.
type QuestionGenerator struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewQuestionGenerator creates a QuestionGenerator backed by the provided
// model collaborator.
func NewQuestionGenerator(generator ai.Generator, log *zap.Logger, maxLogLength int) *QuestionGenerator {
	if maxLogLength <= 0 {
		maxLogLength = logger.DefaultMaxLogLength
	}

	return &QuestionGenerator{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Generate returns exactly count questions for the provided skills, one per
// line from the model, padded with fallback questions when the model returns
// fewer usable lines. On a failed invocation it returns a single fallback
// question instead of propagating the error. An empty skills list yields nil.
func (q *QuestionGenerator) Generate(ctx context.Context, skills []string, count int) []string {
	if len(skills) == 0 {
		return nil
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}

	prompt := buildQuestionsPrompt(skills, count)

	q.logger.Debug("question generation request",
		zap.Strings("skills", skills),
		zap.Int("count", count),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, q.maxLogLen)),
	)

	raw, err := q.generator.GenerateContent(ctx, prompt, ai.SamplingParams{
		Temperature:     questionsTemperature,
		MaxOutputTokens: questionsMaxTokens,
	})
	if err != nil {
		q.logger.Warn("question generation failed, using fallback question",
			zap.Strings("skills", skills),
			zap.Error(err),
		)
		return []string{fmt.Sprintf("(%s) Tell me about a project where you used %s. (open)", skills[0], skills[0])}
	}

	q.logger.Debug("question generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, q.maxLogLen)),
	)

	questions := parseQuestions(raw)
	for len(questions) < count {
		questions = append(questions, fmt.Sprintf("(%s) Describe a project using %s. (open)", skills[0], skills[0]))
	}

	return questions[:count]
}

func buildQuestionsPrompt(skills []string, count int) string {
	prompt := strings.ReplaceAll(questionsPromptTemplate, "{{COUNT}}", fmt.Sprintf("%d", count))
	return strings.ReplaceAll(prompt, "{{SKILLS}}", strings.Join(skills, ", "))
}

// parseQuestions splits the raw response into candidate question lines,
// stripping ordinal numbering and dropping lines without a parenthesized
// domain tag. The tag filter throws away model preamble and closing chatter.
func parseQuestions(raw string) []string {
	lines := strings.Split(raw, "\n")
	questions := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(ordinalPrefix.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}
