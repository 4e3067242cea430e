package legal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/ai"
	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/metrics"
)

// Pipeline runs one analysis prompt per legal domain plus an executive summary
type Pipeline struct {
	completer ai.Completer
	domains   []config.LegalDomain
	parallel  bool
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewPipeline creates a pipeline over the fixed domain table. With parallel
// set, the per-domain completions are issued concurrently.
func NewPipeline(completer ai.Completer, parallel bool, m *metrics.Metrics, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		completer: completer,
		domains:   config.LegalDomains(),
		parallel:  parallel,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Process normalizes a provider transcript and analyzes it
func (p *Pipeline) Process(ctx context.Context, raw []entities.RawTranscriptEntry) (result *entities.AnalysisResult) {
	defer p.recoverInto(&result)
	return p.Analyze(ctx, Normalize(raw))
}

// Analyze runs every domain prompt and the summary prompt over a canonical
// transcript. It never returns an error: a failure of the whole run yields the
// error variant, and a failed completion degrades only its own domain.
func (p *Pipeline) Analyze(ctx context.Context, transcript entities.Transcript) (result *entities.AnalysisResult) {
	defer p.recoverInto(&result)

	start := p.now()
	formatted := FormatTranscript(transcript.Entries)

	results := make([]entities.DomainResult, len(p.domains))
	if p.parallel {
		var wg sync.WaitGroup
		for i, d := range p.domains {
			wg.Add(1)
			go func(i int, d config.LegalDomain) {
				defer wg.Done()
				results[i] = p.analyzeDomain(ctx, d, formatted)
			}(i, d)
		}
		wg.Wait()
	} else {
		for i, d := range p.domains {
			results[i] = p.analyzeDomain(ctx, d, formatted)
		}
	}

	domains := make(map[string]entities.DomainResult, len(p.domains))
	for i, d := range p.domains {
		domains[d.Key] = results[i]
		p.metrics.ObserveDomainResult(d.Key, results[i].IsStructured())
	}

	summary, err := p.complete(ctx, BuildSummaryPrompt(formatted))
	if err != nil {
		summary = CompletionErrorText(err)
	}

	result = &entities.AnalysisResult{
		Summary:         summary,
		Domains:         domains,
		ProcessedAt:     p.now(),
		ModelUsed:       p.completer.Model(),
		Participants:    Participants(transcript),
		DurationSeconds: MeetingDuration(transcript),
	}
	p.metrics.ObservePipeline(p.now().Sub(start), false)

	if p.logger != nil {
		p.logger.Info("✅ Transcript analysis completed",
			zap.Int("entries", len(transcript.Entries)),
			zap.Int("domains", len(domains)),
			zap.Duration("duration", p.now().Sub(start)),
		)
	}
	return result
}

func (p *Pipeline) analyzeDomain(ctx context.Context, d config.LegalDomain, formatted string) (result entities.DomainResult) {
	defer func() {
		if r := recover(); r != nil {
			result = entities.Opaque(CompletionErrorText(fmt.Errorf("panic: %v", r)))
		}
	}()

	text, err := p.complete(ctx, BuildDomainPrompt(d, formatted))
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("⚠️ Domain analysis failed",
				zap.String("domain", d.Key),
				zap.Error(err),
			)
		}
		return entities.Opaque(CompletionErrorText(err))
	}
	return ParseCompletion(text)
}

func (p *Pipeline) complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.completer.Complete(ctx, prompt)
}

func (p *Pipeline) recoverInto(result **entities.AnalysisResult) {
	r := recover()
	if r == nil {
		return
	}
	*result = entities.NewFailedAnalysis(fmt.Sprint(r), p.now())
	p.metrics.ObservePipeline(0, true)
	if p.logger != nil {
		p.logger.Error("❌ Transcript analysis aborted", zap.Any("panic", r))
	}
}
