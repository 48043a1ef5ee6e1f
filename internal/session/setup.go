package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/Chirchirp/Interview-Coach/internal/extract"
	"github.com/Chirchirp/Interview-Coach/internal/llm"
)

// SetupInput is everything the setup form collects: provider access plus
// either document paths or a quick-session field. Validated before any
// provider call is made.
type SetupInput struct {
	Provider string `validate:"required,oneof=anthropic openai groq openrouter gemini ollama mock"`
	Model    string
	APIKey   string `validate:"required_unless=Provider ollama Provider mock"`
	Endpoint string // ollama daemon address; empty means the default local daemon

	// Materials session: document paths. Either may be empty; the planner
	// substitutes placeholders for missing materials.
	ResumePath string `validate:"excluded_if=Quick true"`
	JobPath    string `validate:"excluded_if=Quick true"`

	// Quick session: a job field replaces the documents.
	Field      string `validate:"required_if=Quick true"`
	Experience string
	Focus      []string
	Quick      bool
}

var setupValidator = validator.New()

// Validate checks the input's structure. Returns a ConfigError naming the
// first offending field.
func (in SetupInput) Validate() error {
	err := setupValidator.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return configError(verrs[0])
	}
	return &ConfigError{Field: "input", Reason: err.Error()}
}

func configError(fe validator.FieldError) *ConfigError {
	switch fe.Tag() {
	case "required":
		return &ConfigError{Field: fe.Field(), Reason: "is required"}
	case "oneof":
		return &ConfigError{Field: fe.Field(), Reason: fmt.Sprintf("must be one of: %s", fe.Param())}
	case "required_unless":
		return &ConfigError{Field: fe.Field(), Reason: "is required for this provider"}
	case "required_if":
		return &ConfigError{Field: fe.Field(), Reason: "is required for a quick session"}
	case "excluded_if":
		return &ConfigError{Field: fe.Field(), Reason: "does not apply to a quick session"}
	}
	return &ConfigError{Field: fe.Field(), Reason: "is invalid"}
}

// LLMConfig resolves the input into provider configuration. Environment
// credentials apply first so a .env key still works when the form's key
// field is left blank.
func (in SetupInput) LLMConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	cfg.Provider = in.Provider

	if in.APIKey != "" {
		switch in.Provider {
		case "anthropic":
			cfg.Anthropic.APIKey = in.APIKey
		case "openai":
			cfg.OpenAI.APIKey = in.APIKey
		case "groq":
			cfg.Groq.APIKey = in.APIKey
		case "openrouter":
			cfg.OpenRouter.APIKey = in.APIKey
		case "gemini":
			cfg.Gemini.APIKey = in.APIKey
		}
	}
	if in.Endpoint != "" {
		cfg.Ollama.Host = in.Endpoint
	}
	if in.Model != "" {
		cfg.SetModel(in.Model)
	}
	return cfg
}

// ProfileWith builds the session profile once materials are extracted.
func (in SetupInput) ProfileWith(resumeText, jobText string) Profile {
	return Profile{
		ResumeText: resumeText,
		JobText:    jobText,
		Field:      in.Field,
		Experience: in.Experience,
		Focus:      in.Focus,
		Quick:      in.Quick,
	}
}

// LoadMaterials reads and extracts both documents in parallel. Either path
// may be empty; the planner substitutes placeholders for whatever is
// missing. Quick sessions skip file IO entirely.
func (in SetupInput) LoadMaterials() (Profile, error) {
	if in.Quick {
		return in.ProfileWith("", ""), nil
	}

	var resumeText, jobText string
	var g errgroup.Group

	if in.ResumePath != "" {
		g.Go(func() error {
			text, err := readDocument(in.ResumePath)
			if err != nil {
				return fmt.Errorf("resume: %w", err)
			}
			resumeText = text
			return nil
		})
	}
	if in.JobPath != "" {
		g.Go(func() error {
			text, err := readDocument(in.JobPath)
			if err != nil {
				return fmt.Errorf("job description: %w", err)
			}
			jobText = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Profile{}, err
	}
	return in.ProfileWith(resumeText, jobText), nil
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return extract.Extract(data, path)
}
