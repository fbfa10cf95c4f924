package textgraph

// Config holds all configuration for the textgraph generator.
type Config struct {
	// LLM configures the text-generation provider used for extraction.
	LLM LLMConfig `json:"llm" yaml:"llm"`

	// Temperature for the extraction call. Extraction wants deterministic
	// output, so this defaults to 0.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens caps the completion length. 0 uses the provider default.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Layout configures the spring layout computed for display.
	Layout LayoutConfig `json:"layout" yaml:"layout"`
}

// LLMConfig configures a single LLM provider endpoint.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // ollama, lmstudio, openrouter, openai, groq, xai, gemini, anthropic, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// LayoutConfig controls the force-directed layout.
type LayoutConfig struct {
	// Iterations is the number of force simulation steps.
	Iterations int `json:"iterations" yaml:"iterations"`

	// K is the optimal distance between nodes. Larger values spread the
	// graph out more.
	K float64 `json:"k" yaml:"k"`

	// Seed makes the layout reproducible for identical graphs.
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns a Config with sensible defaults: Gemini flash for
// extraction (matching the hosted deployment) and the standard spring
// layout parameters.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
		},
		Temperature: 0.0,
		Layout: LayoutConfig{
			Iterations: 50,
			K:          3.0,
			Seed:       1,
		},
	}
}

// hostedProviders require an API key; local providers do not.
var hostedProviders = map[string]bool{
	"openai":     true,
	"gemini":     true,
	"anthropic":  true,
	"groq":       true,
	"openrouter": true,
	"xai":        true,
}

// requiresAPIKey reports whether the configured provider needs a credential.
func (c *LLMConfig) requiresAPIKey() bool {
	return hostedProviders[c.Provider]
}
