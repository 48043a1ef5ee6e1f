package report

// Context limits inside the narration prompt. The digest carries the
// numbers; the materials are background only.
const (
	ResumeContextLimit   = 800
	JobContextLimit      = 600
	questionDigestLength = 70
)

// Config holds report narration settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for narration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1200,
		Temperature: 0.4,
	}
}
