package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"edubook-be/pkg/events"
	"edubook-be/pkg/llm"
	"edubook-be/pkg/outline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditRow struct {
	Agent  string
	Input  string
	Output string
}

type recordingAudit struct {
	mu   sync.Mutex
	rows []auditRow
}

func (a *recordingAudit) LogAgentActivity(_ context.Context, _ uuid.UUID, agent, input, output string, _ time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = append(a.rows, auditRow{Agent: agent, Input: input, Output: output})
	return nil
}

func (a *recordingAudit) agents() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.rows))
	for i, row := range a.rows {
		out[i] = row.Agent
	}
	return out
}

// stageProvider answers each stage prompt by its template opening line.
func stageProvider(reviewResponse string) *stubProvider {
	return &stubProvider{generate: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Summarize the following document"):
			return "A compact summary of the source.", nil
		case strings.HasPrefix(prompt, "Analyze the following document summary"):
			return "TITLE: Test Ebook\nSTRUCTURE_TYPE: daily\nSTRUCTURE_COUNT: 2\nKEY_CONCEPTS: alpha, beta", nil
		case strings.HasPrefix(prompt, "Write the educational content"):
			return "Generated subsection text.", nil
		case strings.HasPrefix(prompt, "Review the generated educational content"):
			return reviewResponse, nil
		case strings.HasPrefix(prompt, "Revise the educational content"):
			return "Revised ebook body.", nil
		case strings.HasPrefix(prompt, "Enhance the educational content"):
			return "Enhanced ebook body.", nil
		}
		return "unexpected prompt", nil
	}}
}

func newTestOrchestrator(provider llm.LLMProvider, sink events.Sink, audit AuditLogger) *Orchestrator {
	notifier := events.NewNotifier(sink, nil, nopLogger{})
	client := NewClient(provider, notifier, nil, nopLogger{}, ClientConfig{
		SpacingFloor: time.Millisecond,
		Window:       time.Second,
		WindowLimit:  1000,
	})
	analyzer := outline.NewAnalyzer(client)
	return NewOrchestrator(
		NewSummarizeAgent(client),
		NewGenerateAgent(client, analyzer),
		NewReviewAgent(client),
		NewReviseAgent(client),
		NewEnhanceAgent(client),
		notifier,
		audit,
		nopLogger{},
	)
}

func TestProcessDocumentHighScoreSkipsRevision(t *testing.T) {
	sink := &recordingSink{}
	audit := &recordingAudit{}
	o := newTestOrchestrator(stageProvider("Accuracy Score: 92\nNo issues found."), sink, audit)

	res, err := o.ProcessDocument(context.Background(), uuid.New(), "source document", "daily plan", false)
	require.NoError(t, err)

	assert.Equal(t, 92.0, res.AccuracyScore)
	assert.Equal(t, "Test Ebook", res.Title)
	assert.Equal(t, []string{"alpha", "beta"}, res.KeyConcepts)
	assert.Contains(t, res.Content, "# Test Ebook")
	assert.Contains(t, res.Content, "## Chapter 1: Day 1")
	assert.Contains(t, res.Content, "Generated subsection text.")
	assert.Equal(t, []string{AgentSummarizer, AgentGenerator, AgentReviewer}, audit.agents())

	types := sink.types()
	require.NotEmpty(t, types)
	assert.Equal(t, events.KindProcessingComplete, types[len(types)-1])
	assert.NotContains(t, types, events.KindError)

	// The terminal event reports the score and the run's wall time.
	final := sink.events[len(sink.events)-1].Payload
	assert.Equal(t, 92.0, final["accuracy_score"])
	elapsed, ok := final["total_processing_time"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, elapsed, 0.0)
}

func TestProcessDocumentLowScoreRunsRevisionOnce(t *testing.T) {
	sink := &recordingSink{}
	audit := &recordingAudit{}
	o := newTestOrchestrator(stageProvider("Accuracy Score: 70\nSeveral facts are wrong."), sink, audit)

	res, err := o.ProcessDocument(context.Background(), uuid.New(), "source document", "daily plan", false)
	require.NoError(t, err)

	// Revision replaces the content but the score stays the reviewer's.
	assert.Equal(t, 70.0, res.AccuracyScore)
	assert.Equal(t, "Revised ebook body.", res.Content)
	assert.Equal(t, []string{AgentSummarizer, AgentGenerator, AgentReviewer, AgentRevisor}, audit.agents())

	// The revisor's audit input is the reviewer's corrections.
	assert.Contains(t, audit.rows[3].Input, "Several facts are wrong.")
	// The reviewer's audit input is the parsed score label.
	assert.Equal(t, "Score: 70", audit.rows[2].Input)
}

func TestProcessDocumentEnhanceRunsLast(t *testing.T) {
	sink := &recordingSink{}
	audit := &recordingAudit{}
	o := newTestOrchestrator(stageProvider("Accuracy Score: 95"), sink, audit)

	res, err := o.ProcessDocument(context.Background(), uuid.New(), "source document", "", true)
	require.NoError(t, err)

	assert.Equal(t, "Enhanced ebook body.", res.Content)
	assert.Equal(t, []string{AgentSummarizer, AgentGenerator, AgentReviewer, AgentEnhancer}, audit.agents())
}

func TestProcessDocumentUnparseableReviewUsesDefaultScore(t *testing.T) {
	sink := &recordingSink{}
	audit := &recordingAudit{}
	o := newTestOrchestrator(stageProvider("The content is generally fine."), sink, audit)

	res, err := o.ProcessDocument(context.Background(), uuid.New(), "source document", "", false)
	require.NoError(t, err)

	// 75 is below the threshold, so the default score triggers revision.
	assert.Equal(t, DefaultAccuracyScore, res.AccuracyScore)
	assert.Contains(t, audit.agents(), AgentRevisor)
}

func TestProcessDocumentDetachedRunStoresNothing(t *testing.T) {
	sink := &recordingSink{}
	audit := &recordingAudit{}
	o := newTestOrchestrator(stageProvider("Accuracy Score: 90"), sink, audit)

	res, err := o.ProcessDocument(context.Background(), uuid.Nil, "source document", "", false)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Content)
	assert.Empty(t, audit.rows)
	assert.Empty(t, sink.types())
}

func TestProcessDocumentStopsOnCancelledContext(t *testing.T) {
	provider := stageProvider("Accuracy Score: 90")
	o := newTestOrchestrator(provider, &recordingSink{}, &recordingAudit{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := o.ProcessDocument(ctx, uuid.New(), "source document", "", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}
