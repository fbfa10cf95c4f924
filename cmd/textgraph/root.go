package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"textgraph"
)

var (
	cfgFile string
	logFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "textgraph",
	Short: "Turn prose into an interactive knowledge graph",
	Long: `textgraph sends free-form text to an LLM, extracts the entities and
relationships it finds, and builds an undirected knowledge graph with a
deterministic force-directed layout and summary statistics.

Configuration precedence: flags > environment (TEXTGRAPH_*) > config file.
Provider API keys are also read from the conventional variables
(GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, GROQ_API_KEY, ...).

Examples:
  textgraph generate notes.txt
  textgraph generate --text "Ada Lovelace worked with Charles Babbage." --json
  textgraph serve --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		setupLogging()
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default textgraph.yaml in cwd or ~/.config/textgraph/)")
	pf.String("provider", "", "LLM provider (gemini, openai, anthropic, groq, openrouter, xai, ollama, lmstudio, custom)")
	pf.String("model", "", "model name (provider default when empty)")
	pf.String("base-url", "", "override the provider base URL")
	pf.String("api-key", "", "provider API key")
	pf.Float64("temperature", 0, "sampling temperature")
	pf.Int("max-tokens", 0, "response token limit (0 = provider default)")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig wires viper: flags bind to config keys, TEXTGRAPH_* env vars
// override the file, flags override everything.
func initConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textgraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if configDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(configDir + "/textgraph")
		}
	}

	viper.SetEnvPrefix("TEXTGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// loadConfig builds the engine configuration from viper state plus the
// conventional provider key environment variables.
func loadConfig() textgraph.Config {
	cfg := textgraph.DefaultConfig()

	if v := viper.GetString("provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("base-url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetString("api-key"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := viper.GetFloat64("temperature"); v != 0 {
		cfg.Temperature = v
	}
	if v := viper.GetInt("max-tokens"); v != 0 {
		cfg.MaxTokens = v
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "groq":
			cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
		case "openrouter":
			cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
		case "xai":
			cfg.LLM.APIKey = os.Getenv("XAI_API_KEY")
		}
	}

	return cfg
}

// setupLogging installs the default slog handler. Logs go to stderr so
// stdout stays clean for JSON output; --log-file adds a rotated file sink.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
}
