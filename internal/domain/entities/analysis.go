package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// NoSummaryPlaceholder is stored on a Meeting when the analysis carried no summary
const NoSummaryPlaceholder = "No summary available"

// EntryKind tags the shape of one list item inside a domain analysis
type EntryKind int

const (
	EntryUnsupported EntryKind = iota
	EntryPlainText
	EntryDetailed
)

// ActionItemDetail is the structured form of an action item
type ActionItemDetail struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// ActionItemEntry is either a bare string or an ActionItemDetail
type ActionItemEntry struct {
	Kind   EntryKind
	Text   string
	Detail *ActionItemDetail
	raw    json.RawMessage
}

// PlainActionItem builds a plain-text action item
func PlainActionItem(text string) ActionItemEntry {
	return ActionItemEntry{Kind: EntryPlainText, Text: text}
}

// DetailedActionItem builds a structured action item
func DetailedActionItem(d ActionItemDetail) ActionItemEntry {
	return ActionItemEntry{Kind: EntryDetailed, Detail: &d}
}

func (e ActionItemEntry) IsDetailed() bool { return e.Kind == EntryDetailed && e.Detail != nil }

func (e ActionItemEntry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EntryPlainText:
		return json.Marshal(e.Text)
	case EntryDetailed:
		return json.Marshal(e.Detail)
	}
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	return []byte("null"), nil
}

func (e *ActionItemEntry) UnmarshalJSON(data []byte) error {
	kind, err := decodeEntry(data, &e.Text, func(obj map[string]json.RawMessage) {
		e.Detail = &ActionItemDetail{
			Title:       looseString(obj["title"]),
			Description: looseString(obj["description"]),
			Priority:    looseString(obj["priority"]),
			Deadline:    looseString(obj["deadline"]),
		}
	})
	if err != nil {
		return err
	}
	e.Kind = kind
	if kind == EntryUnsupported {
		e.raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

// IssueDetail is the structured form of a key issue
type IssueDetail struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Importance  string   `json:"importance,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// IssueEntry is either a bare string or an IssueDetail
type IssueEntry struct {
	Kind   EntryKind
	Text   string
	Detail *IssueDetail
	raw    json.RawMessage
}

// PlainIssue builds a plain-text key issue
func PlainIssue(text string) IssueEntry {
	return IssueEntry{Kind: EntryPlainText, Text: text}
}

// DetailedIssue builds a structured key issue
func DetailedIssue(d IssueDetail) IssueEntry {
	return IssueEntry{Kind: EntryDetailed, Detail: &d}
}

func (e IssueEntry) IsDetailed() bool { return e.Kind == EntryDetailed && e.Detail != nil }

func (e IssueEntry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EntryPlainText:
		return json.Marshal(e.Text)
	case EntryDetailed:
		return json.Marshal(e.Detail)
	}
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	return []byte("null"), nil
}

func (e *IssueEntry) UnmarshalJSON(data []byte) error {
	kind, err := decodeEntry(data, &e.Text, func(obj map[string]json.RawMessage) {
		e.Detail = &IssueDetail{
			Title:       looseString(obj["title"]),
			Description: looseString(obj["description"]),
			Importance:  looseString(obj["importance"]),
			Tags:        looseStrings(obj["tags"]),
		}
	})
	if err != nil {
		return err
	}
	e.Kind = kind
	if kind == EntryUnsupported {
		e.raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

// DomainAnalysis is the structured per-domain answer of the model
type DomainAnalysis struct {
	KeyIssues         []IssueEntry      `json:"key_issues"`
	ActionItems       []ActionItemEntry `json:"action_items"`
	Deadlines         []string          `json:"deadlines"`
	LegalRequirements []string          `json:"legal_requirements"`
	Summary           string            `json:"summary"`
}

// UnmarshalJSON accepts any JSON object. Fields of an unexpected shape decode
// to their zero value instead of failing the whole object.
func (a *DomainAnalysis) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("domain analysis must be a JSON object")
	}

	*a = DomainAnalysis{
		Deadlines:         looseStrings(obj["deadlines"]),
		LegalRequirements: looseStrings(obj["legal_requirements"]),
		Summary:           looseString(obj["summary"]),
	}
	for _, item := range looseList(obj["key_issues"]) {
		var entry IssueEntry
		if err := entry.UnmarshalJSON(item); err != nil {
			return err
		}
		a.KeyIssues = append(a.KeyIssues, entry)
	}
	for _, item := range looseList(obj["action_items"]) {
		var entry ActionItemEntry
		if err := entry.UnmarshalJSON(item); err != nil {
			return err
		}
		a.ActionItems = append(a.ActionItems, entry)
	}
	return nil
}

// DomainResult is the outcome for one domain: structured analysis or opaque text
type DomainResult struct {
	Analysis *DomainAnalysis
	Text     string
}

// Structured wraps a decoded analysis
func Structured(a *DomainAnalysis) DomainResult {
	return DomainResult{Analysis: a}
}

// Opaque wraps free text the model returned (or an error message)
func Opaque(text string) DomainResult {
	return DomainResult{Text: text}
}

func (r DomainResult) IsStructured() bool { return r.Analysis != nil }

func (r DomainResult) MarshalJSON() ([]byte, error) {
	if r.IsStructured() {
		return json.Marshal(r.Analysis)
	}
	return json.Marshal(r.Text)
}

func (r *DomainResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var analysis DomainAnalysis
		if err := json.Unmarshal(trimmed, &analysis); err != nil {
			return err
		}
		*r = Structured(&analysis)
		return nil
	}
	*r = Opaque(looseString(trimmed))
	return nil
}

// AnalysisResult aggregates every domain result plus the executive summary.
// The error variant carries only Error and ProcessedAt.
type AnalysisResult struct {
	Summary         string                  `json:"summary,omitempty"`
	Domains         map[string]DomainResult `json:"domains,omitempty"`
	ProcessedAt     time.Time               `json:"processed_at"`
	ModelUsed       string                  `json:"model_used,omitempty"`
	Participants    []string                `json:"participants,omitempty"`
	DurationSeconds int                     `json:"duration_seconds,omitempty"`
	Error           string                  `json:"error,omitempty"`
}

// NewFailedAnalysis builds the error variant
func NewFailedAnalysis(message string, at time.Time) *AnalysisResult {
	return &AnalysisResult{Error: message, ProcessedAt: at}
}

// Failed reports whether this is the error variant
func (r *AnalysisResult) Failed() bool {
	return r == nil || r.Error != ""
}

func decodeEntry(data []byte, text *string, detailed func(map[string]json.RawMessage)) (EntryKind, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return EntryUnsupported, nil
	}
	switch trimmed[0] {
	case '"':
		if err := json.Unmarshal(trimmed, text); err != nil {
			return EntryUnsupported, err
		}
		return EntryPlainText, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return EntryUnsupported, err
		}
		detailed(obj)
		return EntryDetailed, nil
	}
	return EntryUnsupported, nil
}

// looseString decodes a JSON string, rendering any other non-null value as its JSON text
func looseString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	return string(trimmed)
}

func looseList(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func looseStrings(raw json.RawMessage) []string {
	items := looseList(raw)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, looseString(item))
	}
	return out
}
