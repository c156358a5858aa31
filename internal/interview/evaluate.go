package interview

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/Soumik-05/talentscout/internal/ai"
	"github.com/Soumik-05/talentscout/internal/logger"

	"go.uber.org/zap"
)

//go:embed evaluate_prompt.md
var evaluatePromptTemplate string

const (
	evaluateTemperature = 0.2
	evaluateMaxTokens   = 200

	// defaultScore is assumed when the model response carries no parseable
	// Score line.
	defaultScore = 3
)

var (
	scorePattern    = regexp.MustCompile(`Score\s*:\s*(\d)`)
	feedbackPattern = regexp.MustCompile(`(?s)Feedback\s*:\s*(.+)`)
)

// Assessment is the scored outcome of a single question/answer pair. A zero
// Score marks a failed model invocation; parse misses fall back to the
// default score instead.
type Assessment struct {
	Score    int
	Feedback string
}

// Evaluator scores interview answers via the language model.
type Evaluator struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewEvaluator creates an Evaluator backed by the provided model collaborator.
func NewEvaluator(generator ai.Generator, log *zap.Logger, maxLogLength int) *Evaluator {
	if maxLogLength <= 0 {
		maxLogLength = logger.DefaultMaxLogLength
	}

	return &Evaluator{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Evaluate scores the answer to a question on a 1-5 scale with short
// feedback. Parsing is lenient: a missing Score line defaults to 3 and a
// missing Feedback line falls back to the full raw response. A failed model
// invocation yields {0, "Error: <cause>"} rather than an error.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string) Assessment {
	prompt := buildEvaluatePrompt(question, answer)

	e.logger.Debug("answer evaluation request",
		zap.String("question", logger.TruncateForLog(question, e.maxLogLen)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt, ai.SamplingParams{
		Temperature:     evaluateTemperature,
		MaxOutputTokens: evaluateMaxTokens,
	})
	if err != nil {
		e.logger.Warn("answer evaluation failed",
			zap.String("question", logger.TruncateForLog(question, e.maxLogLen)),
			zap.Error(err),
		)
		return Assessment{Score: 0, Feedback: fmt.Sprintf("Error: %v", err)}
	}

	e.logger.Debug("answer evaluation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseAssessment(raw)
}

func buildEvaluatePrompt(question, answer string) string {
	prompt := strings.ReplaceAll(evaluatePromptTemplate, "{{QUESTION}}", question)
	return strings.ReplaceAll(prompt, "{{ANSWER}}", answer)
}

func parseAssessment(raw string) Assessment {
	raw = strings.TrimSpace(raw)

	score := defaultScore
	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		if parsed, err := strconv.Atoi(m[1]); err == nil {
			score = parsed
		}
	}

	feedback := raw
	if m := feedbackPattern.FindStringSubmatch(raw); m != nil {
		feedback = strings.TrimSpace(m[1])
	}

	return Assessment{Score: score, Feedback: feedback}
}
