package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/pkg/clients/anthropic"
)

// ErrDisabled indicates no assistant provider is configured.
var ErrDisabled = errors.New("assistant is not configured")

const sessionTTL = 30 * time.Minute

const systemPrompt = `You are a helpful assistant for a poultry farm management application.
The farmer will ask questions about flock health, feeding, vaccination schedules and egg production.
Answer concisely and practically. If a question needs a veterinarian, say so instead of guessing.`

// Service orchestrates the chat assistant: it keeps a short-lived per-farm
// conversation history and relays it to the provider.
type Service struct {
	client   anthropic.Client
	sessions *SessionStore
	logger   *zap.Logger
}

// NewService wires a new assistant service. A nil client leaves the assistant
// disabled; Chat then fails with ErrDisabled.
func NewService(client anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		sessions: NewSessionStore(sessionTTL),
		logger:   logger,
	}
}

// Chat relays one farmer message within the farm's running conversation and
// returns the assistant reply.
func (s *Service) Chat(ctx context.Context, farmID, message string) (string, error) {
	if s.client == nil {
		return "", ErrDisabled
	}

	history := append(s.sessions.History(farmID), anthropic.Message{Role: "user", Content: message})

	reply, err := s.client.Chat(ctx, systemPrompt, history)
	if err != nil {
		return "", fmt.Errorf("assistant chat: %w", err)
	}

	s.sessions.Append(farmID, append(history, anthropic.Message{Role: "assistant", Content: reply}))

	s.logger.Debug("assistant reply sent", zap.String("farm_id", farmID), zap.Int("turns", len(history)+1))
	return reply, nil
}
