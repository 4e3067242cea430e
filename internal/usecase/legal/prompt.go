package legal

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/config"
)

// FormatTranscript renders the transcript block embedded in every prompt
func FormatTranscript(entries []entities.TranscriptEntry) string {
	var sb strings.Builder
	sb.WriteString("MEETING TRANSCRIPT:\n\n")
	for _, e := range entries {
		speaker := e.Speaker
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		timestamp := e.Timestamp
		if timestamp == "" {
			timestamp = "00:00:00"
		}
		sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", timestamp, speaker, e.Text))
	}
	return sb.String()
}

const domainPromptTemplate = `You are a specialized legal AI assistant focused on %[1]s.

%[2]s

Based on the following meeting transcript, please:
1. Identify key issues, risks, or opportunities relevant to %[1]s
2. Extract action items that legal staff should follow up on
3. Note any deadlines or important dates mentioned
4. Highlight any specific legal or regulatory requirements discussed

Format your response as JSON with the following structure:
{
    "key_issues": [list of issues identified],
    "action_items": [list of specific actions with priority levels],
    "deadlines": [list of dates and associated tasks],
    "legal_requirements": [list of legal or regulatory requirements mentioned],
    "summary": "A brief summary of findings for this domain"
}

If there is no relevant information for this domain, include an empty list for each category and note that in the summary.

%[3]s`

const summaryPromptTemplate = `You are a senior legal advisor to the executive team.

Based on the following meeting transcript, please provide a comprehensive legal summary addressing:
1. The most critical legal issues discussed in the meeting
2. High-priority action items that require immediate attention
3. Strategic legal considerations for the business
4. Risk assessment of issues mentioned

Format your response as a professional executive summary that could be presented to senior leadership.
Keep your response concise but thorough.

%s`

// BuildDomainPrompt asks for the four category lists plus a summary as JSON
func BuildDomainPrompt(domain config.LegalDomain, transcript string) string {
	name := domain.Name
	if name == "" {
		name = domain.Key
	}
	return fmt.Sprintf(domainPromptTemplate, name, domain.Description, transcript)
}

// BuildSummaryPrompt asks for a prose executive summary
func BuildSummaryPrompt(transcript string) string {
	return fmt.Sprintf(summaryPromptTemplate, transcript)
}
