package ai

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/config"
)

// transcriptService is the slice of the AssemblyAI SDK the transcriber needs
type transcriptService interface {
	TranscribeFromURL(ctx context.Context, audioURL string, opts *aai.TranscriptOptionalParams) (aai.Transcript, error)
}

// AssemblyAITranscriber turns a recording URL into speaker-labelled utterances
type AssemblyAITranscriber struct {
	transcripts transcriptService
	logger      *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber backed by the official SDK
func NewAssemblyAITranscriber(cfg *config.AssemblyConfig, logger *zap.Logger) *AssemblyAITranscriber {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	client := aai.NewClient(apiKey)
	return &AssemblyAITranscriber{transcripts: client.Transcripts, logger: logger}
}

// Transcribe blocks until AssemblyAI finishes and returns one raw entry per utterance
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audioURL string) ([]entities.RawTranscriptEntry, error) {
	if audioURL == "" {
		return nil, fmt.Errorf("audio URL is required")
	}

	if t.logger != nil {
		t.logger.Info("🎙️ Starting transcription", zap.String("audio_url", audioURL))
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	transcript, err := t.transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		if t.logger != nil {
			t.logger.Error("❌ AssemblyAI transcription failed", zap.Error(err))
		}
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai error: %s", msg)
	}

	entries := UtterancesToEntries(transcript.Utterances)
	if t.logger != nil {
		t.logger.Info("✅ Transcription completed",
			zap.String("transcript_id", deref(transcript.ID)),
			zap.Int("utterances", len(entries)),
		)
	}
	return entries, nil
}

// UtterancesToEntries converts AssemblyAI utterances (millisecond offsets) to raw
// transcript entries (second offsets)
func UtterancesToEntries(utterances []aai.TranscriptUtterance) []entities.RawTranscriptEntry {
	entries := make([]entities.RawTranscriptEntry, 0, len(utterances))
	for _, utt := range utterances {
		entry := entities.RawTranscriptEntry{
			Transcript: deref(utt.Text),
		}
		if speaker := deref(utt.Speaker); speaker != "" {
			entry.Speaker = "Speaker " + speaker
		}

		for _, w := range utt.Words {
			entry.Words = append(entry.Words, entities.Word{
				Word:  deref(w.Text),
				Start: msToSeconds(w.Start),
				End:   msToSeconds(w.End),
			})
		}
		if len(entry.Words) == 0 && utt.Start != nil {
			entry.Words = []entities.Word{{
				Word:  entry.Transcript,
				Start: msToSeconds(utt.Start),
				End:   msToSeconds(utt.End),
			}}
		}
		entries = append(entries, entry)
	}
	return entries
}

func msToSeconds(ms *int64) float64 {
	if ms == nil {
		return 0
	}
	return float64(*ms) / 1000.0
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
