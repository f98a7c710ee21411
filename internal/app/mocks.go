package app

import (
	"context"

	"sakanly_backend/internal/email"
)

// NoopEmailProvider stands in when SMTP is not configured. Moderation
// proceeds, notifications are silently dropped.
type NoopEmailProvider struct{}

func (p *NoopEmailProvider) Send(msg *email.Message) error { return nil }

// StubAssistant answers every chat question with a fixed apology. Used when
// no OpenAI key is configured, mainly local development.
type StubAssistant struct{}

func (a *StubAssistant) Complete(ctx context.Context, system, user string) (string, error) {
	return "عذراً، المساعد الذكي غير متاح حالياً.", nil
}
