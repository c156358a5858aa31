package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Soumik-05/talentscout/internal/ai"
	"github.com/Soumik-05/talentscout/internal/ai/gemini"
	"github.com/Soumik-05/talentscout/internal/conversation"
	"github.com/Soumik-05/talentscout/internal/interview"
	"github.com/Soumik-05/talentscout/internal/logger"
	"github.com/Soumik-05/talentscout/internal/secrets"
	"github.com/Soumik-05/talentscout/internal/storage"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive candidate screening session",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().IntP("questions", "q", 0, "number of AI-generated interview questions")
	chatCmd.Flags().StringP("output-dir", "o", "", "directory for finished interview records")

	viper.BindPFlag("interview.question-count", chatCmd.Flags().Lookup("questions"))
	viper.BindPFlag("output.dir", chatCmd.Flags().Lookup("output-dir"))
}

// chat is the main command for the cli: it wires the collaborators together
// and runs the conversation loop until the session reaches a terminal state.
func chat(_ *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}
	config = withDefaults(config)

	zlog.Info("starting talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	generator, err := newGenerator(ctx, config.AI)
	if err != nil {
		zlog.Fatal(
			"building the language model client",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE, or the ai.gemini keys in the configuration file"),
		)
	}

	aiLogger := logger.WithCommonFields(zlog, config.AI.Provider, generator.Model())

	rules, err := conversation.RulesFromConfig(viper.Get("interview.heuristics"))
	if err != nil {
		zlog.Fatal("reading heuristic rules", zap.Error(err))
	}

	machine := conversation.NewMachine(conversation.Deps{
		Extractor: interview.NewExtractor(config.Interview.Vocabulary),
		Questions: interview.NewQuestionGenerator(generator, aiLogger, config.AI.Gemini.MaxLogLength),
		Evaluator: interview.NewEvaluator(generator, aiLogger, config.AI.Gemini.MaxLogLength),
		Heuristic: conversation.NewPositionHeuristic(rules),
		Sink:      storage.NewFileSink(config.Output.Dir, zlog),
		Logger:    zlog,
	}, config.Interview.QuestionCount)

	session := conversation.NewSession()
	zlog.Debug("session created", zap.String("session_id", session.ID))

	fmt.Println(conversation.GreetingMessage)
	fmt.Println()

	input := promptui.Prompt{Label: "You"}

	for !session.State.Terminal() {
		text, err := input.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				zlog.Info("session interrupted", zap.String("session_id", session.ID))
				return
			}
			zlog.Fatal("reading input", zap.Error(err))
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		reply := machine.Turn(ctx, session, text)
		fmt.Println()
		fmt.Println(reply)
		fmt.Println()
	}

	zlog.Info("session finished",
		zap.String("session_id", session.ID),
		zap.String("state", string(session.State)),
	)
}

func newGenerator(ctx context.Context, cfg *AIConfig) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
}

// withDefaults fills the optional config subtrees so the rest of the wiring
// can dereference them without nil checks.
func withDefaults(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	if config.Interview == nil {
		config.Interview = &InterviewConfig{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Provider == "" {
		config.AI.Provider = "gemini"
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	return config
}
