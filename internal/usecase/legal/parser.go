package legal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
)

// ParseCompletion decodes brace-delimited model output into a structured
// analysis. Anything else, including invalid JSON, is returned unchanged as
// opaque text.
func ParseCompletion(text string) entities.DomainResult {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return entities.Opaque(text)
	}

	var analysis entities.DomainAnalysis
	if err := json.Unmarshal([]byte(trimmed), &analysis); err != nil {
		return entities.Opaque(text)
	}
	return entities.Structured(&analysis)
}

// CompletionErrorText is the opaque result recorded for a failed completion
func CompletionErrorText(err error) string {
	return fmt.Sprintf("Error processing with AI: %v", err)
}
