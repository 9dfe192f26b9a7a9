package pipeline

import (
	"context"
	"fmt"
	"time"

	"edubook-be/pkg/ebook"
	"edubook-be/pkg/outline"

	"github.com/google/uuid"
)

// Agent kinds recorded in the audit trail.
const (
	AgentSummarizer = "summarizer"
	AgentGenerator  = "generator"
	AgentReviewer   = "reviewer"
	AgentRevisor    = "revisor"
	AgentEnhancer   = "enhancer"
)

// Input truncation limits. Oversized prompts are clipped rather than
// rejected to keep token spend bounded.
const (
	summaryInputLimit = 4000
	stageInputLimit   = 2000
)

// Token ceilings per stage.
const (
	summarizeMaxTokens  = 2000
	reviewMaxTokens     = 2000
	reviseMaxTokens     = 2500
	enhanceMaxTokens    = 2500
	subsectionMaxTokens = 800
	chapterMaxTokens    = 1500
)

const summarizePromptTemplate = `Summarize the following document for educational purposes:
- Extract main concepts and key findings
- Identify learning objectives for students
- Create a section outline that fits the structuring instruction
- Preserve technical accuracy and important details
- Structure content in a logical learning progression

Text: %s
Structuring instruction: %s

Please provide a structured summary with:
1. Main Learning Objectives
2. Key Concepts
3. Section Outline
4. Important Findings`

const subsectionPromptTemplate = `Write the educational content for one subsection of an ebook titled "%s".
- Section: %s
- Subsection: %s
- Follow the structuring instruction: %s
- Format in clean markdown without repeating the subsection heading
- Include practical examples where they help
- Make the content engaging and accessible

Source summary: %s`

const reviewPromptTemplate = `Review the generated educational content for accuracy against the original source:
- Compare key facts and concepts
- Check for any misrepresentations or errors
- Verify technical details and terminology
- Rate overall accuracy on a scale of 0-100
- Suggest specific corrections if needed

Original Source: %s
Generated Content: %s

Please provide:
1. Accuracy Score (0-100)
2. List of any factual errors found
3. Suggested corrections
4. Overall assessment`

const revisePromptTemplate = `Revise the educational content based on the provided feedback:
- Apply the requested changes carefully
- Maintain content consistency and flow
- Preserve educational value and accuracy
- Keep the same overall structure unless requested otherwise

Original Content: %s
User Feedback: %s

Please provide the revised content that addresses the feedback while maintaining quality.`

const enhancePromptTemplate = `Enhance the educational content with additional valuable resources:
- Add related concepts and background information
- Include real-world applications and examples
- Suggest case studies relevant to the topic
- Add references to further reading
- Include current industry trends if applicable

Content: %s

Please enhance the content by:
1. Adding relevant background context
2. Including practical applications
3. Suggesting additional resources
4. Adding current examples or case studies`

// StageResult is the common shape of a single-call agent invocation.
type StageResult struct {
	Agent    string
	Output   string
	Duration time.Duration
}

// SummarizeAgent distills the raw document into a structured summary.
type SummarizeAgent struct {
	client *Client
}

func NewSummarizeAgent(client *Client) *SummarizeAgent {
	return &SummarizeAgent{client: client}
}

func (a *SummarizeAgent) Process(ctx context.Context, sessionId uuid.UUID, text, instruction string) StageResult {
	start := time.Now()
	prompt := fmt.Sprintf(summarizePromptTemplate, truncate(text, summaryInputLimit), instruction)
	// Summaries must always exist for the stages downstream, so a
	// failed call degrades to its soft text.
	output := a.client.Complete(ctx, sessionId, "summarization", prompt, summarizeMaxTokens).SoftText()
	return StageResult{
		Agent:    AgentSummarizer,
		Output:   output,
		Duration: time.Since(start),
	}
}

// GenerateAgent infers the document structure and produces the ebook
// body, one completion call per subsection.
type GenerateAgent struct {
	client   *Client
	analyzer *outline.Analyzer
}

func NewGenerateAgent(client *Client, analyzer *outline.Analyzer) *GenerateAgent {
	return &GenerateAgent{client: client, analyzer: analyzer}
}

type GenerateResult struct {
	Content     string
	Title       string
	Kind        outline.StructureKind
	KeyConcepts []string
	Duration    time.Duration
}

func (a *GenerateAgent) Generate(ctx context.Context, sessionId uuid.UUID, summary, instruction string) GenerateResult {
	start := time.Now()

	o := a.analyzer.Analyze(ctx, sessionId, summary, instruction)

	maxTokens := subsectionMaxTokens
	if o.Kind == outline.KindChapters {
		maxTokens = chapterMaxTokens
	}

	clippedSummary := truncate(summary, stageInputLimit)
	for i := range o.Units {
		unit := &o.Units[i]
		if unit.SubsectionContent == nil {
			unit.SubsectionContent = make(map[string]string, len(unit.Subsections))
		}
		for _, sub := range unit.Subsections {
			prompt := fmt.Sprintf(subsectionPromptTemplate, o.Title, unit.Title, sub, instruction, clippedSummary)
			// Each subsection degrades independently: one failed call
			// costs one subsection, never the ebook.
			unit.SubsectionContent[sub] = a.client.Complete(ctx, sessionId, "content_generation", prompt, maxTokens).SoftText()
		}
	}

	return GenerateResult{
		Content:     ebook.Render(o.Title, o.Units),
		Title:       o.Title,
		Kind:        o.Kind,
		KeyConcepts: o.KeyConcepts,
		Duration:    time.Since(start),
	}
}

// ReviewAgent scores the generated content against the source document.
type ReviewAgent struct {
	client *Client
}

func NewReviewAgent(client *Client) *ReviewAgent {
	return &ReviewAgent{client: client}
}

type ReviewResult struct {
	Score       float64
	Corrections string
	Duration    time.Duration
}

func (a *ReviewAgent) Review(ctx context.Context, sessionId uuid.UUID, original, generated string) ReviewResult {
	start := time.Now()
	prompt := fmt.Sprintf(reviewPromptTemplate, truncate(original, stageInputLimit), truncate(generated, stageInputLimit))
	// A failed review call yields soft text with no score line, which
	// parses to the default score rather than aborting.
	corrections := a.client.Complete(ctx, sessionId, "accuracy_review", prompt, reviewMaxTokens).SoftText()
	return ReviewResult{
		Score:       ParseScore(corrections),
		Corrections: corrections,
		Duration:    time.Since(start),
	}
}

// ReviseAgent rewrites content according to reviewer or user feedback.
type ReviseAgent struct {
	client *Client
}

func NewReviseAgent(client *Client) *ReviseAgent {
	return &ReviseAgent{client: client}
}

func (a *ReviseAgent) Revise(ctx context.Context, sessionId uuid.UUID, content, feedback string) StageResult {
	start := time.Now()
	prompt := fmt.Sprintf(revisePromptTemplate, truncate(content, stageInputLimit), feedback)
	output := a.client.Complete(ctx, sessionId, "revision", prompt, reviseMaxTokens).SoftText()
	return StageResult{
		Agent:    AgentRevisor,
		Output:   output,
		Duration: time.Since(start),
	}
}

// EnhanceAgent augments content with background and further resources.
type EnhanceAgent struct {
	client *Client
}

func NewEnhanceAgent(client *Client) *EnhanceAgent {
	return &EnhanceAgent{client: client}
}

func (a *EnhanceAgent) Enhance(ctx context.Context, sessionId uuid.UUID, content string) StageResult {
	start := time.Now()
	prompt := fmt.Sprintf(enhancePromptTemplate, truncate(content, stageInputLimit))
	output := a.client.Complete(ctx, sessionId, "enhancement", prompt, enhanceMaxTokens).SoftText()
	return StageResult{
		Agent:    AgentEnhancer,
		Output:   output,
		Duration: time.Since(start),
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
