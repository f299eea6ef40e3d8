package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/threatlingo/threatlingo/internal/config"
	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/pipeline"
	"github.com/threatlingo/threatlingo/internal/server"
)

var (
	configPath string
	addrFlag   string
	category   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "threatlingo",
	Short: "Translate natural-language security queries into VirusTotal Intelligence syntax",
	Long: `threatlingo turns free-form analyst queries ("find malicious PDFs seen
last week") into structured, field-validated queries and the VirusTotal
Intelligence search syntax.

Raw artifacts (hashes, IPs, domains, URLs) are recognized directly and
passed through without touching the language model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		zcfg := zap.NewProductionConfig()
		if lvl, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zcfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP translation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := buildOracle(cfg)
		if err != nil {
			return err
		}

		tr := pipeline.New(o, gateOptions(cfg), logger)
		srv := server.New(tr, logger)

		addr := cfg.Server.Addr
		if addrFlag != "" {
			addr = addrFlag
		}
		return srv.Start(addr)
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate [query]",
	Short: "Translate a single query and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := buildOracle(cfg)
		if err != nil {
			return err
		}

		tr := pipeline.New(o, gateOptions(cfg), logger)
		res, err := tr.Translate(cmd.Context(), strings.Join(args, " "), category)
		if err != nil {
			return err
		}

		out := map[string]any{
			"vt_format": res.Compiled,
			"category":  res.Category,
		}
		if res.Structured != nil {
			out["formatted_query"] = res.Structured
		} else {
			out["formatted_query"] = res.Literal
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// buildOracle constructs the configured backend. The provider choice is made
// once here and injected; nothing downstream switches on it.
func buildOracle(cfg *config.Config) (oracle.Oracle, error) {
	switch cfg.Oracle.Provider {
	case "gemini":
		apiKey := os.Getenv(cfg.Oracle.Gemini.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("environment variable %s is not set", cfg.Oracle.Gemini.APIKeyEnv)
		}
		return oracle.NewGemini(
			cfg.Oracle.Gemini.BaseURL,
			apiKey,
			cfg.Oracle.Gemini.Model,
			cfg.Oracle.Timeout,
			cfg.Oracle.MaxResponseBytes,
		), nil
	case "ollama":
		return oracle.NewOllama(
			cfg.Oracle.Ollama.BaseURL,
			cfg.Oracle.Ollama.Model,
			cfg.Oracle.Timeout,
			cfg.Oracle.MaxResponseBytes,
		), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Oracle.Provider)
	}
}

func gateOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		TranslateInput: cfg.Gates.TranslateInput,
		RelevanceGate:  cfg.Gates.RelevanceGate,
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "threatlingo.yaml", "path to config file")
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "HTTP listen address (overrides config)")
	translateCmd.Flags().StringVar(&category, "category", "", "category override (FILE, URL, DOMAIN, IP)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(translateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
