package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/session"
	"github.com/Chirchirp/Interview-Coach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "AI interview coach in your terminal",
	Long: "Coach — practice a full job interview against an AI coach: ten planned\n" +
		"questions, STAR-graded feedback on every answer, and a coaching report\n" +
		"you can take away as a text file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// Credentials via .env are optional; a missing file is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("provider", "", "LLM provider: anthropic, openai, groq, openrouter, gemini, ollama, mock")
	pf.String("model", "", "Model name (provider default if empty)")
	pf.String("api-key", "", "Provider API key (overrides environment)")
	pf.String("endpoint", "", "Ollama daemon address (overrides OLLAMA_HOST)")
	pf.String("db", "", "Path to the event database (overrides COACH_DB)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the COACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveLLMConfig builds provider configuration from flags over
// environment over defaults.
func resolveLLMConfig(cmd *cobra.Command) llm.Config {
	cfg := llm.ConfigFromEnv()

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	if k, _ := cmd.Flags().GetString("api-key"); k != "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.Anthropic.APIKey = k
		case "openai":
			cfg.OpenAI.APIKey = k
		case "groq":
			cfg.Groq.APIKey = k
		case "openrouter":
			cfg.OpenRouter.APIKey = k
		case "gemini":
			cfg.Gemini.APIKey = k
		}
	}
	if e, _ := cmd.Flags().GetString("endpoint"); e != "" {
		cfg.Ollama.Host = e
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.SetModel(m)
	}
	return cfg
}

// setupDefaults pre-fills the TUI setup form from flags and environment,
// so exported credentials don't have to be retyped.
func setupDefaults(cmd *cobra.Command) session.SetupInput {
	cfg, found := llm.DiscoverConfig()
	if !found {
		cfg = llm.ConfigFromEnv()
	}

	in := session.SetupInput{Provider: cfg.Provider}

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		in.Provider = strings.ToLower(p)
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		in.Model = m
	}
	if k, _ := cmd.Flags().GetString("api-key"); k != "" {
		in.APIKey = k
	} else {
		switch in.Provider {
		case "anthropic":
			in.APIKey = cfg.Anthropic.APIKey
		case "openai":
			in.APIKey = cfg.OpenAI.APIKey
		case "groq":
			in.APIKey = cfg.Groq.APIKey
		case "openrouter":
			in.APIKey = cfg.OpenRouter.APIKey
		case "gemini":
			in.APIKey = cfg.Gemini.APIKey
		}
	}
	if e, _ := cmd.Flags().GetString("endpoint"); e != "" {
		in.Endpoint = e
	}
	return in
}
