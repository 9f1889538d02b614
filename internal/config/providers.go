package config

// DefaultProvider is used when neither the file nor the environment picks one
const DefaultProvider = "gemini"

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	SignupURL    string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google, generous free tier",
		NeedsAPIKey:  true,
		SignupURL:    "https://aistudio.google.com/app/apikey",
		Models:       []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-2.0-flash"},
		DefaultModel: "gemini-1.5-flash",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		NeedsAPIKey:  true,
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great writing",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.anthropic.com/",
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel: "claude-3-5-sonnet-20241022",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		SignupURL:    "https://console.groq.com/keys",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"anthropic/claude-3.5-sonnet", "openai/gpt-4o", "meta-llama/llama-3.1-70b-instruct"},
		DefaultModel: "meta-llama/llama-3.1-70b-instruct",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		Models:       []string{"llama3.1:8b", "llama3.1:70b", "qwen2.5:7b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:           "custom",
		Name:         "Custom",
		Description:  "Any OpenAI-compatible endpoint",
		NeedsAPIKey:  false,
		DefaultModel: "",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
