package legal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
)

// UnknownSpeaker labels entries whose speaker is missing
const UnknownSpeaker = "Unknown"

// Normalize converts provider entries into the canonical transcript. Timestamps
// are relative to the first word of the first entry and formatted MM:SS; the
// minute field keeps counting past 59.
func Normalize(raw []entities.RawTranscriptEntry) entities.Transcript {
	entries := make([]entities.TranscriptEntry, 0, len(raw))
	if len(raw) == 0 {
		return entities.Transcript{Entries: entries}
	}

	var t0 float64
	if len(raw[0].Words) > 0 {
		t0 = raw[0].Words[0].Start
	}

	for _, r := range raw {
		var elapsed float64
		if len(r.Words) > 0 {
			elapsed = r.Words[0].Start - t0
		}
		speaker := r.Speaker
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		entries = append(entries, entities.TranscriptEntry{
			Speaker:   speaker,
			Timestamp: FormatElapsed(elapsed),
			Text:      r.Transcript,
		})
	}
	return entities.Transcript{Entries: entries}
}

// FormatElapsed renders seconds as MM:SS; negative or NaN input is 00:00
func FormatElapsed(seconds float64) string {
	if !(seconds > 0) {
		return "00:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseTimestamp converts MM:SS or HH:MM:SS to seconds; anything else is 0
func ParseTimestamp(ts string) int {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	}
	return 0
}

// Participants returns the unique speakers in order of first appearance
func Participants(t entities.Transcript) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range t.Entries {
		if e.Speaker == "" {
			continue
		}
		if _, ok := seen[e.Speaker]; ok {
			continue
		}
		seen[e.Speaker] = struct{}{}
		out = append(out, e.Speaker)
	}
	return out
}

// MeetingDuration is the last entry's timestamp in seconds
func MeetingDuration(t entities.Transcript) int {
	if len(t.Entries) == 0 {
		return 0
	}
	return ParseTimestamp(t.Entries[len(t.Entries)-1].Timestamp)
}

var keywordCategories = []struct {
	category string
	keywords []string
}{
	{"compliance", []string{"compliance", "regulation", "regulatory", "law", "legal", "requirement"}},
	{"risk", []string{"risk", "threat", "liability", "exposure", "danger", "hazard"}},
	{"contract", []string{"contract", "agreement", "license", "clause", "term", "provision"}},
	{"litigation", []string{"litigation", "lawsuit", "case", "court", "plaintiff", "defendant", "sue"}},
	{"ip", []string{"ip", "intellectual property", "patent", "trademark", "copyright", "trade secret"}},
}

// Metrics computes duration, per-speaker word counts and legal keyword hits.
// A keyword counts once per entry it appears in (substring match).
func Metrics(t entities.Transcript) entities.TranscriptMetrics {
	m := entities.TranscriptMetrics{
		SpeakingDistribution: make(map[string]int),
		Keywords:             make(map[string]int, len(keywordCategories)),
	}
	for _, kc := range keywordCategories {
		m.Keywords[kc.category] = 0
	}
	if len(t.Entries) == 0 {
		return m
	}

	m.DurationSeconds = MeetingDuration(t)
	for _, e := range t.Entries {
		speaker := e.Speaker
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		m.SpeakingDistribution[speaker] += len(strings.Fields(e.Text))

		lower := strings.ToLower(e.Text)
		for _, kc := range keywordCategories {
			for _, kw := range kc.keywords {
				if strings.Contains(lower, kw) {
					m.Keywords[kc.category]++
				}
			}
		}
	}
	m.ParticipantCount = len(m.SpeakingDistribution)
	return m
}
