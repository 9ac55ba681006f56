// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"
	"strings"

	"github.com/hinteval/hinteval/internal/appconfig"
	"github.com/hinteval/hinteval/internal/providers"
	"github.com/hinteval/hinteval/internal/providers/ollama"
	"github.com/hinteval/hinteval/internal/providers/openaicompat"
)

// NewChatProvider selects and configures the provider matching a host's type.
// Hosts without a type default to the OpenAI-compatible provider.
func NewChatProvider(cfg *appconfig.Config, host appconfig.Host) (providers.ChatProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}

	switch normalizeHostType(host.Type) {
	case "ollama":
		return ollama.New(cfg), nil
	case "openai":
		return openaicompat.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported host type %q for host %s", host.Type, host.Name)
	}
}

func normalizeHostType(hostType string) string {
	switch strings.ToLower(strings.TrimSpace(hostType)) {
	case "", "openai", "openai-compat", "llamacpp", "llama.cpp":
		return "openai"
	case "ollama":
		return "ollama"
	default:
		return strings.ToLower(strings.TrimSpace(hostType))
	}
}
