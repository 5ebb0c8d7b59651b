package narrative

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ohare93/onboard/internal/config"
)

// Gate decides whether the backend is usable and lets the user unlock it
type Gate interface {
	Ready() bool
	Provide(secret string) error
}

// Open is a Gate that is always ready
type Open struct{}

// Ready always reports true
func (Open) Ready() bool { return true }

// Provide is a no-op
func (Open) Provide(string) error { return nil }

// KeyGate unlocks an OpenAIClient with an API key
type KeyGate struct {
	client *OpenAIClient
	save   func(key string) error
}

// NewKeyGate creates a gate for client. save persists an accepted key and may be nil.
func NewKeyGate(client *OpenAIClient, save func(key string) error) *KeyGate {
	return &KeyGate{client: client, save: save}
}

// Ready reports whether the client holds a key
func (g *KeyGate) Ready() bool {
	return g.client.HasAPIKey()
}

// Provide installs and persists a key
func (g *KeyGate) Provide(secret string) error {
	key := strings.TrimSpace(secret)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	g.client.SetAPIKey(key)
	if g.save != nil {
		if err := g.save(key); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
	}
	return nil
}

// New builds the collaborator and its gate for cfg
func New(cfg config.Narrative, saveKey func(string) error) (Collaborator, Gate, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		client := NewOpenAIClient(OpenAIOpts{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.ResolveAPIKey(),
			Model:   cfg.Model,
		})
		return client, NewKeyGate(client, saveKey), nil
	case config.ProviderClaude:
		return NewCommandProvider(cfg.Command, ""), Open{}, nil
	case config.ProviderOffline:
		return Offline{}, Open{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown narrative provider: %s", cfg.Provider)
	}
}

// Timeout returns the configured request timeout
func Timeout(cfg config.Narrative) time.Duration {
	if cfg.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}
