package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tabib-chatbot/internal/config"
	"tabib-chatbot/internal/core"
	"tabib-chatbot/internal/llm"
	"tabib-chatbot/internal/logger"
)

var (
	flagConfig  string
	flagEnvFile string
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tabib",
		Short:         "Tabib Tech: bilingual MediBot patient intake",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newChatCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the dependencies shared by the commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	scripts  core.Scripts
	dialogue *core.Dialogue
}

// setup loads configuration and builds the dialogue. A missing API key fails
// here, before any session starts.
func setup() (*app, error) {
	if err := config.LoadEnv(flagEnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)

	scripts := core.DefaultScripts()
	if cfg.Scripts.File != "" {
		if scripts, err = core.LoadScripts(cfg.Scripts.File); err != nil {
			return nil, err
		}
		log.Info("loaded question scripts", logrus.Fields{"file": cfg.Scripts.File, "questions": scripts.Len()})
	}

	gen := llm.NewOpenAIClient(cfg.OpenAI)
	dialogue := core.NewDialogue(gen,
		core.WithTimeout(cfg.Generation.Timeout),
		core.WithLogger(log),
	)
	return &app{cfg: cfg, log: log, scripts: scripts, dialogue: dialogue}, nil
}
