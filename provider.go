package menagerie

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Providers lists every supported provider.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle}
}

// APIKeyEnv returns the environment key holding the provider's API key.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}

// Known reports whether p is a supported provider.
func (p Provider) Known() bool {
	for _, known := range Providers() {
		if p == known {
			return true
		}
	}
	return false
}
