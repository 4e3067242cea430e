package legal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/ai"
	"github.com/johnquangdev/legalmind/pkg/config"
)

const contractsJSON = `{
  "key_issues": ["SaaS renewal terms are unfavorable"],
  "action_items": [{"title": "Renegotiate SaaS agreement", "priority": "high", "deadline": "2025-06-30"}],
  "deadlines": ["June 30"],
  "legal_requirements": [],
  "summary": "Renewal risk"
}`

// scriptedModel answers by recognizing which prompt it was given
func scriptedModel(calls *[]string, mu *sync.Mutex) ai.Completer {
	return ai.CompleterFunc{
		Name: "gpt-test",
		Fn: func(_ context.Context, prompt string) (string, error) {
			mu.Lock()
			*calls = append(*calls, prompt)
			mu.Unlock()

			switch {
			case strings.HasPrefix(prompt, "You are a senior legal advisor"):
				return "Executive summary", nil
			case strings.Contains(prompt, "focused on Contracts & Agreements."):
				return contractsJSON, nil
			case strings.Contains(prompt, "focused on Compliance & Regulatory."):
				return "Nothing relevant to compliance.", nil
			case strings.Contains(prompt, "focused on IP & Technology Law."):
				return "", errors.New("rate limited")
			case strings.Contains(prompt, "focused on Litigation & Disputes."):
				panic("model exploded")
			}
			return `{"summary": "No relevant information"}`, nil
		},
	}
}

var sampleRaw = []entities.RawTranscriptEntry{
	{Speaker: "Alice", Transcript: "Our SaaS contract renews in June.", Words: []entities.Word{{Word: "Our", Start: 5, End: 5.2}}},
	{Speaker: "Bob", Transcript: "Let's renegotiate.", Words: []entities.Word{{Word: "Let's", Start: 95, End: 95.3}}},
}

func TestPipeline_Process(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		var (
			calls []string
			mu    sync.Mutex
		)
		p := NewPipeline(scriptedModel(&calls, &mu), parallel, nil, nil)

		res := p.Process(context.Background(), sampleRaw)
		require.False(t, res.Failed(), "parallel=%v", parallel)

		assert.Len(t, calls, len(config.LegalDomains())+1)
		assert.Equal(t, "Executive summary", res.Summary)
		assert.Equal(t, "gpt-test", res.ModelUsed)
		assert.Equal(t, []string{"Alice", "Bob"}, res.Participants)
		assert.Equal(t, 90, res.DurationSeconds)
		require.Len(t, res.Domains, 5)

		contracts := res.Domains[config.DomainContracts]
		require.True(t, contracts.IsStructured())
		assert.Equal(t, "Renewal risk", contracts.Analysis.Summary)

		compliance := res.Domains[config.DomainCompliance]
		assert.False(t, compliance.IsStructured())
		assert.Equal(t, "Nothing relevant to compliance.", compliance.Text)

		assert.Equal(t, "Error processing with AI: rate limited", res.Domains[config.DomainIPTech].Text)
		assert.Contains(t, res.Domains[config.DomainLitigation].Text, "Error processing with AI: panic: model exploded")
		assert.True(t, res.Domains[config.DomainGovernance].IsStructured())
	}
}

func TestPipeline_PromptsEmbedTranscript(t *testing.T) {
	var (
		calls []string
		mu    sync.Mutex
	)
	p := NewPipeline(scriptedModel(&calls, &mu), false, nil, nil)
	p.Process(context.Background(), sampleRaw)

	for _, prompt := range calls {
		assert.Contains(t, prompt, "MEETING TRANSCRIPT:\n\n[00:00] Alice: Our SaaS contract renews in June.\n[01:30] Bob: Let's renegotiate.\n")
	}
}

func TestPipeline_SummaryFailure(t *testing.T) {
	completer := ai.CompleterFunc{
		Name: "gpt-test",
		Fn: func(_ context.Context, prompt string) (string, error) {
			if strings.HasPrefix(prompt, "You are a senior legal advisor") {
				return "", errors.New("timeout")
			}
			return "{}", nil
		},
	}
	res := NewPipeline(completer, false, nil, nil).Process(context.Background(), sampleRaw)
	require.False(t, res.Failed())
	assert.Equal(t, "Error processing with AI: timeout", res.Summary)
}

func TestPipeline_CancelledContext(t *testing.T) {
	var called bool
	completer := ai.CompleterFunc{
		Name: "gpt-test",
		Fn: func(context.Context, string) (string, error) {
			called = true
			return "{}", nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewPipeline(completer, false, nil, nil).Process(ctx, sampleRaw)
	require.False(t, res.Failed())
	assert.False(t, called)
	for _, dr := range res.Domains {
		assert.Contains(t, dr.Text, "Error processing with AI: context canceled")
	}
}

type panickyModel struct{ ai.CompleterFunc }

func (panickyModel) Model() string { panic("no model configured") }

func TestPipeline_RunFailureYieldsErrorVariant(t *testing.T) {
	completer := panickyModel{ai.CompleterFunc{Name: "x", Fn: func(context.Context, string) (string, error) { return "{}", nil }}}

	res := NewPipeline(completer, false, nil, nil).Process(context.Background(), sampleRaw)
	require.True(t, res.Failed())
	assert.Equal(t, "no model configured", res.Error)
	assert.Nil(t, res.Domains)
	assert.False(t, res.ProcessedAt.IsZero())
}
