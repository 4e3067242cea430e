package legal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
)

// DecodeTranscriptInput accepts a provider transcript (entries carrying
// "transcript" text and "words") or a canonical one (entries carrying "text"),
// either as a bare list or wrapped in {"transcript": [...]}.
func DecodeTranscriptInput(data []byte) (AnalyzeInput, error) {
	items, err := transcriptItems(data)
	if err != nil {
		return AnalyzeInput{}, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, err)
	}
	if len(items) == 0 {
		return AnalyzeInput{}, usecaseErrors.ErrEmptyTranscript
	}

	if isProviderEntry(items[0]) {
		raw := make([]entities.RawTranscriptEntry, 0, len(items))
		for _, item := range items {
			var e entities.RawTranscriptEntry
			if err := json.Unmarshal(item, &e); err != nil {
				return AnalyzeInput{}, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, err)
			}
			raw = append(raw, e)
		}
		return AnalyzeInput{Raw: raw}, nil
	}

	entries := make([]entities.TranscriptEntry, 0, len(items))
	for _, item := range items {
		var e entities.TranscriptEntry
		if err := json.Unmarshal(item, &e); err != nil {
			return AnalyzeInput{}, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, err)
		}
		entries = append(entries, e)
	}
	return AnalyzeInput{Transcript: entities.Transcript{Entries: entries}}, nil
}

func transcriptItems(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("transcript is required")
	}

	var items []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var wrapped struct {
		Transcript []json.RawMessage `json:"transcript"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Transcript, nil
}

func isProviderEntry(item json.RawMessage) bool {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(item, &keys); err != nil {
		return false
	}
	_, hasWords := keys["words"]
	_, hasTranscript := keys["transcript"]
	_, hasText := keys["text"]
	return hasWords || (hasTranscript && !hasText)
}
