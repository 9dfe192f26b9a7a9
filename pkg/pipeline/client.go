package pipeline

import (
	"context"
	"sync"
	"time"

	"edubook-be/internal/pkg/logger"
	"edubook-be/pkg/events"
	"edubook-be/pkg/llm"

	"github.com/google/uuid"
)

// ClientConfig tunes the throttle shared by every agent in the process.
type ClientConfig struct {
	// SpacingFloor is the minimum gap between two dispatched requests.
	SpacingFloor time.Duration
	// Window and WindowLimit cap the number of requests per rolling window.
	Window      time.Duration
	WindowLimit int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		SpacingFloor: time.Second,
		Window:       60 * time.Second,
		WindowLimit:  20,
	}
}

// Completion is the tagged outcome of one completion request. Callers
// decide explicitly whether a failure aborts, substitutes placeholder
// text, or degrades via SoftText.
type Completion struct {
	Text     string
	Err      error
	Sequence uint64
	Duration time.Duration
}

// SoftText folds a failure into the textual payload. Agents that must
// never abort the pipeline use this and let the degraded text flow on.
func (c Completion) SoftText() string {
	if c.Err != nil {
		return "Error generating content: " + c.Err.Error()
	}
	return c.Text
}

// Client is the rate-limited gateway to the LLM provider. One instance
// is shared process-wide across all concurrent sessions so that a
// single upstream quota is respected; the session id travels with each
// call rather than living on the client.
type Client struct {
	provider  llm.LLMProvider
	notifier  *events.Notifier
	estimator TokenEstimator
	log       logger.ILogger
	cfg       ClientConfig

	mu           sync.Mutex
	lastDispatch time.Time
	windowStart  time.Time
	windowCount  int
	sequence     uint64
}

// NewClient builds the shared client. The estimator may be nil, in
// which case token estimates are omitted from logs.
func NewClient(provider llm.LLMProvider, notifier *events.Notifier, estimator TokenEstimator, log logger.ILogger, cfg ClientConfig) *Client {
	if cfg.SpacingFloor <= 0 {
		cfg.SpacingFloor = time.Second
	}
	if cfg.Window <= 0 {
		cfg.Window = 60 * time.Second
	}
	if cfg.WindowLimit <= 0 {
		cfg.WindowLimit = 20
	}
	return &Client{
		provider:  provider,
		notifier:  notifier,
		estimator: estimator,
		log:       log,
		cfg:       cfg,
	}
}

// reserve allocates a dispatch slot under the throttle and returns the
// time the request may go out plus its sequence number. Requests are
// only ever delayed, never dropped.
func (c *Client) reserve(now time.Time) (time.Time, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dispatchAt := now
	if !c.lastDispatch.IsZero() {
		if earliest := c.lastDispatch.Add(c.cfg.SpacingFloor); earliest.After(dispatchAt) {
			dispatchAt = earliest
		}
	}

	if c.windowStart.IsZero() || dispatchAt.Sub(c.windowStart) >= c.cfg.Window {
		c.windowStart = dispatchAt
		c.windowCount = 0
	}
	if c.windowCount >= c.cfg.WindowLimit {
		dispatchAt = c.windowStart.Add(c.cfg.Window)
		c.windowStart = dispatchAt
		c.windowCount = 0
	}

	c.windowCount++
	c.lastDispatch = dispatchAt
	c.sequence++
	return dispatchAt, c.sequence
}

// Complete issues one throttled completion request and reports its
// lifecycle as progress events keyed by the given session.
func (c *Client) Complete(ctx context.Context, sessionId uuid.UUID, requestKind, prompt string, maxTokens int) Completion {
	dispatchAt, sequence := c.reserve(time.Now())

	if wait := time.Until(dispatchAt); wait > 0 {
		c.log.Debug("pipeline", "throttling request", map[string]interface{}{
			"request_kind": requestKind,
			"sequence":     sequence,
			"wait_ms":      wait.Milliseconds(),
		})
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return Completion{Err: ctx.Err(), Sequence: sequence}
		}
	}

	details := map[string]interface{}{
		"request_kind":  requestKind,
		"sequence":      sequence,
		"prompt_length": len(prompt),
		"max_tokens":    maxTokens,
	}
	if c.estimator != nil {
		details["estimated_tokens"] = c.estimator.EstimateTokens(prompt)
	}
	c.log.Info("pipeline", "llm request dispatched", details)
	c.notifier.NotifyLLMStarted(ctx, sessionId, requestKind, sequence, len(prompt))

	start := time.Now()
	text, err := c.provider.Generate(ctx, prompt,
		llm.WithMaxTokens(maxTokens),
		llm.WithTemperature(0.7),
	)
	duration := time.Since(start)

	if err != nil {
		c.log.Error("pipeline", "llm request failed", map[string]interface{}{
			"request_kind": requestKind,
			"sequence":     sequence,
			"error":        err.Error(),
		})
		c.notifier.NotifyLLMError(ctx, sessionId, requestKind, sequence, err.Error())
		return Completion{Err: err, Sequence: sequence, Duration: duration}
	}

	c.notifier.NotifyLLMCompleted(ctx, sessionId, requestKind, sequence, len(text), duration)
	return Completion{Text: text, Sequence: sequence, Duration: duration}
}

// CompleteText is the soft-failure form used by collaborators that
// treat any textual payload as content.
func (c *Client) CompleteText(ctx context.Context, sessionId uuid.UUID, requestKind, prompt string, maxTokens int) string {
	return c.Complete(ctx, sessionId, requestKind, prompt, maxTokens).SoftText()
}
