package grader

// Context limits inside the grade prompt. Grading needs the answer in
// full (up to a cap) but only highlights of the materials.
const (
	AnswerContextLimit = 800
	ResumeContextLimit = 1000
	JobContextLimit    = 600
)

// Config holds answer grading settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for grading. Low temperature:
// scores should be stable, not creative.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.3,
	}
}
