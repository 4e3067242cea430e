package entities

import (
	"bytes"
	"encoding/json"
)

// Word is a single recognized word with its absolute start/end offset in seconds
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// RawTranscriptEntry is one utterance as returned by the meeting bot provider
type RawTranscriptEntry struct {
	Speaker    string `json:"speaker"`
	Transcript string `json:"transcript"`
	Words      []Word `json:"words,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// TranscriptEntry is one canonical line of a meeting transcript
type TranscriptEntry struct {
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Transcript is the canonical, chronologically ordered transcript
type Transcript struct {
	Entries []TranscriptEntry `json:"transcript"`
}

// IsEmpty reports whether the transcript has no entries
func (t Transcript) IsEmpty() bool {
	return len(t.Entries) == 0
}

// MarshalJSON always emits a list, never null
func (t Transcript) MarshalJSON() ([]byte, error) {
	entries := t.Entries
	if entries == nil {
		entries = []TranscriptEntry{}
	}
	return json.Marshal(struct {
		Entries []TranscriptEntry `json:"transcript"`
	}{Entries: entries})
}

// UnmarshalJSON accepts both {"transcript": [...]} and a bare list of entries
func (t *Transcript) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []TranscriptEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		t.Entries = entries
		return nil
	}

	var wrapped struct {
		Entries []TranscriptEntry `json:"transcript"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	t.Entries = wrapped.Entries
	return nil
}

// TranscriptMetrics summarizes who spoke, for how long and about what
type TranscriptMetrics struct {
	DurationSeconds      int            `json:"duration"`
	ParticipantCount     int            `json:"participant_count"`
	SpeakingDistribution map[string]int `json:"speaking_distribution"`
	Keywords             map[string]int `json:"keywords"`
}
