package coach

// Context limits inside hint and discussion prompts.
const (
	hintResumeLimit = 1200
	hintJobLimit    = 800
	chatResumeLimit = 1000
	chatJobLimit    = 700
)

// HistoryWindow is how many trailing discussion turns are sent with each
// chat request.
const HistoryWindow = 6

// Config holds hint and discussion settings.
type Config struct {
	HintMaxTokens   int
	HintTemperature float64
	ChatMaxTokens   int
	ChatTemperature float64
}

// DefaultConfig returns sensible defaults for coaching calls.
func DefaultConfig() Config {
	return Config{
		HintMaxTokens:   300,
		HintTemperature: 0.5,
		ChatMaxTokens:   700,
		ChatTemperature: 0.65,
	}
}
