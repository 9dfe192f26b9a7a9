package pipeline

import (
	"context"
	"strconv"
	"time"

	"edubook-be/internal/pkg/logger"
	"edubook-be/pkg/events"

	"github.com/google/uuid"
)

// ReviseThreshold is the accuracy score below which the revision stage
// runs. Revision runs at most once and its output is not re-scored.
const ReviseThreshold = 85.0

const auditTruncateLimit = 500

// AuditLogger appends one audit row per agent invocation.
type AuditLogger interface {
	LogAgentActivity(ctx context.Context, sessionId uuid.UUID, agent, input, output string, duration time.Duration) error
}

// Result is what one full pipeline run hands back to the caller.
// Persisting it is the caller's responsibility.
type Result struct {
	Summary       string
	Content       string
	Title         string
	KeyConcepts   []string
	AccuracyScore float64
}

// Orchestrator drives the agent stages in fixed order:
//
//	Summarize -> Generate -> Review -> [score < 85: Revise] -> [requested: Enhance]
//
// Stages never abort on degraded LLM output; only context cancellation
// stops a run early.
type Orchestrator struct {
	summarizer *SummarizeAgent
	generator  *GenerateAgent
	reviewer   *ReviewAgent
	revisor    *ReviseAgent
	enhancer   *EnhanceAgent

	notifier *events.Notifier
	audit    AuditLogger
	log      logger.ILogger
}

func NewOrchestrator(
	summarizer *SummarizeAgent,
	generator *GenerateAgent,
	reviewer *ReviewAgent,
	revisor *ReviseAgent,
	enhancer *EnhanceAgent,
	notifier *events.Notifier,
	audit AuditLogger,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		summarizer: summarizer,
		generator:  generator,
		reviewer:   reviewer,
		revisor:    revisor,
		enhancer:   enhancer,
		notifier:   notifier,
		audit:      audit,
		log:        log,
	}
}

// ProcessDocument runs the full pipeline for one document. A nil
// session id runs the pipeline detached: no audit rows, no progress
// events.
func (o *Orchestrator) ProcessDocument(ctx context.Context, sessionId uuid.UUID, document, instruction string, enhance bool) (*Result, error) {
	started := time.Now()

	// Stage 1: summarize.
	o.notifier.NotifyAgentStarted(ctx, sessionId, AgentSummarizer, "Analyzing and summarizing the document")
	summary := o.summarizer.Process(ctx, sessionId, document, instruction)
	o.logActivity(ctx, sessionId, AgentSummarizer, document, summary.Output, summary.Duration)
	o.notifier.NotifyAgentCompleted(ctx, sessionId, AgentSummarizer, "Summary ready, generating ebook content")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: generate.
	o.notifier.NotifyAgentStarted(ctx, sessionId, AgentGenerator, "Generating structured ebook content")
	generated := o.generator.Generate(ctx, sessionId, summary.Output, instruction)
	o.logActivity(ctx, sessionId, AgentGenerator, summary.Output, generated.Content, generated.Duration)
	o.notifier.NotifyAgentCompleted(ctx, sessionId, AgentGenerator, "Ebook generated, reviewing accuracy")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := generated.Content

	// Stage 3: review.
	o.notifier.NotifyAgentStarted(ctx, sessionId, AgentReviewer, "Reviewing content accuracy against the source")
	review := o.reviewer.Review(ctx, sessionId, document, content)
	o.logActivity(ctx, sessionId, AgentReviewer, scoreLabel(review.Score), review.Corrections, review.Duration)
	o.notifier.NotifyAgentCompleted(ctx, sessionId, AgentReviewer, "Accuracy review complete")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: revise once when the score falls below the threshold.
	// The revised output is not re-scored.
	if review.Score < ReviseThreshold {
		o.notifier.NotifyAgentStarted(ctx, sessionId, AgentRevisor, "Applying reviewer corrections")
		revised := o.revisor.Revise(ctx, sessionId, content, review.Corrections)
		o.logActivity(ctx, sessionId, AgentRevisor, review.Corrections, revised.Output, revised.Duration)
		o.notifier.NotifyAgentCompleted(ctx, sessionId, AgentRevisor, "Corrections applied")
		content = revised.Output

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	// Stage 5: enhance on request.
	if enhance {
		o.notifier.NotifyAgentStarted(ctx, sessionId, AgentEnhancer, "Enhancing content with additional resources")
		enhanced := o.enhancer.Enhance(ctx, sessionId, content)
		o.logActivity(ctx, sessionId, AgentEnhancer, content, enhanced.Output, enhanced.Duration)
		o.notifier.NotifyAgentCompleted(ctx, sessionId, AgentEnhancer, "Enhancement complete")
		content = enhanced.Output
	}

	elapsed := time.Since(started)
	o.log.Info("pipeline", "document processing finished", map[string]interface{}{
		"session_id":     sessionId.String(),
		"accuracy_score": review.Score,
		"elapsed_ms":     elapsed.Milliseconds(),
	})
	o.notifier.NotifyProcessingComplete(ctx, sessionId, "Ebook generation complete", review.Score, elapsed)

	return &Result{
		Summary:       summary.Output,
		Content:       content,
		Title:         generated.Title,
		KeyConcepts:   generated.KeyConcepts,
		AccuracyScore: review.Score,
	}, nil
}

func (o *Orchestrator) logActivity(ctx context.Context, sessionId uuid.UUID, agent, input, output string, duration time.Duration) {
	if o.audit == nil || sessionId == uuid.Nil {
		return
	}
	err := o.audit.LogAgentActivity(ctx, sessionId, agent,
		truncate(input, auditTruncateLimit),
		truncate(output, auditTruncateLimit),
		duration,
	)
	if err != nil {
		o.log.Warn("pipeline", "failed to append agent audit row", map[string]interface{}{
			"session_id": sessionId.String(),
			"agent":      agent,
			"error":      err.Error(),
		})
	}
}

func scoreLabel(score float64) string {
	return "Score: " + strconv.FormatFloat(score, 'f', -1, 64)
}
