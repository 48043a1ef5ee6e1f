package planner

// Context limits for candidate materials inside the plan prompt.
const (
	ResumeContextLimit = 3000
	JobContextLimit    = 2000
)

// Config holds plan generation settings.
type Config struct {
	MaxTokens int
	// MaterialsTemperature is used when analyzing a real resume, where
	// grounded extraction matters more than variety.
	MaterialsTemperature float64
	// FieldTemperature is used for quick-start plans, which have no
	// materials to stay faithful to.
	FieldTemperature float64
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:            1000,
		MaterialsTemperature: 0.5,
		FieldTemperature:     0.6,
	}
}
