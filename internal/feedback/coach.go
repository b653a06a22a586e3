package feedback

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/musclememo/internal/metrics"
	"github.com/claude/musclememo/internal/models"
)

// Fallback texts stored as feedback when no generated text is available.
const (
	FallbackNoKey = "Excellent workout! Live AI analysis isn't available because no API key is configured, but every set you logged counts. Next time, try adding 2.5kg."
	FallbackEmpty = "Great job on your workout! (No specific analysis generated)"
	FallbackError = "Great workout! (AI Analysis currently unavailable due to network or key issues)"
)

// DefaultTimeout bounds one generation request.
const DefaultTimeout = 20 * time.Second

// Generator produces text from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// OutcomeRecorder counts how each request was answered.
type OutcomeRecorder interface {
	FeedbackOutcome(outcome string)
}

// Coach adapts a Generator into a call that always returns text. A nil
// generator means no credential is configured.
type Coach struct {
	gen      Generator
	timeout  time.Duration
	recorder OutcomeRecorder
	log      *slog.Logger
}

// NewCoach creates a Coach. recorder may be nil.
func NewCoach(gen Generator, timeout time.Duration, recorder OutcomeRecorder, log *slog.Logger) *Coach {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coach{gen: gen, timeout: timeout, recorder: recorder, log: log}
}

// RequestFeedback returns coaching text for session given prior history,
// newest first. It never fails.
func (c *Coach) RequestFeedback(ctx context.Context, session models.WorkoutSession, history []models.WorkoutSession) string {
	if c.gen == nil {
		c.log.Warn("feedback api key missing, using fallback", "session_id", session.ID)
		c.record(metrics.OutcomeFallbackNoKey)
		return FallbackNoKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.gen.Generate(ctx, SystemPrompt, BuildPrompt(session, history))
	if err != nil {
		c.log.Warn("feedback request failed", "session_id", session.ID, "error", err, "elapsed", time.Since(start))
		c.record(metrics.OutcomeFallbackError)
		return FallbackError
	}
	text = strings.TrimSpace(text)
	if text == "" {
		c.log.Warn("feedback response empty", "session_id", session.ID)
		c.record(metrics.OutcomeFallbackEmpty)
		return FallbackEmpty
	}

	c.log.Info("feedback generated", "session_id", session.ID, "chars", len([]rune(text)), "elapsed", time.Since(start))
	c.record(metrics.OutcomeGenerated)
	return text
}

func (c *Coach) record(outcome string) {
	if c.recorder != nil {
		c.recorder.FeedbackOutcome(outcome)
	}
}
