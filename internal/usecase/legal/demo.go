package legal

import (
	"time"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/config"
)

const (
	DemoMeetingID    = "demo_meeting_1"
	DemoMeetingTitle = "Weekly Legal Team Sync - April 23, 2025"
)

// DemoAnalysis returns a canned two-domain analysis used to seed the dashboard
func DemoAnalysis(at time.Time) *entities.AnalysisResult {
	return &entities.AnalysisResult{
		Summary: "The legal team discussed several critical compliance issues, contract renewals, and potential IP concerns that require immediate attention. GDPR compliance with new data collection methods was identified as high priority, along with safety concerns at manufacturing facility B. Contract renewals for key SaaS vendors need to be renegotiated with more favorable terms, and IP assignment clauses should be standardized across all contractor agreements.",
		Domains: map[string]entities.DomainResult{
			config.DomainCompliance: entities.Structured(&entities.DomainAnalysis{
				KeyIssues: plainIssues(
					"GDPR compliance issues with new customer data collection forms",
					"Potential safety regulation violations in manufacturing facility B",
					"Ethics concerns regarding marketing campaign targeting vulnerable populations",
				),
				ActionItems: plainActions(
					"Review GDPR requirements for customer forms",
					"Schedule safety inspection for manufacturing facility B",
					"Convene ethics committee to review marketing campaign",
				),
				Deadlines: []string{
					"GDPR compliance report due by May 15, 2025",
					"Safety inspection must be completed within 2 weeks",
				},
				LegalRequirements: []string{
					"GDPR Article 7 requirements for consent",
					"OSHA workplace safety standards section 1910.132",
				},
				Summary: "Several compliance issues were identified requiring immediate attention",
			}),
			config.DomainContracts: entities.Structured(&entities.DomainAnalysis{
				KeyIssues: plainIssues(
					"SaaS vendor agreement renewal approaching with unfavorable terms",
					"Missing IP assignment clauses in contractor agreements",
					"Inconsistent force majeure clauses across supplier contracts",
				),
				ActionItems: plainActions(
					"Renegotiate SaaS vendor agreement",
					"Update contractor agreement template with proper IP clauses",
					"Standardize force majeure language across supplier contracts",
				),
				Deadlines: []string{
					"SaaS agreement expires on June 30, 2025",
					"Contractor agreement updates needed by end of month",
				},
				LegalRequirements: []string{
					"IP assignment requirements under current copyright law",
					"Contract enforceability standards",
				},
				Summary: "Contract inconsistencies and approaching renewals require attention",
			}),
		},
		ProcessedAt: at,
		ModelUsed:   "gpt-4",
	}
}

func plainActions(texts ...string) []entities.ActionItemEntry {
	out := make([]entities.ActionItemEntry, 0, len(texts))
	for _, t := range texts {
		out = append(out, entities.PlainActionItem(t))
	}
	return out
}

func plainIssues(texts ...string) []entities.IssueEntry {
	out := make([]entities.IssueEntry, 0, len(texts))
	for _, t := range texts {
		out = append(out, entities.PlainIssue(t))
	}
	return out
}
