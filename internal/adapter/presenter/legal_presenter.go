package presenter

import (
	"github.com/johnquangdev/legalmind/internal/adapter/dto/legal"
	"github.com/johnquangdev/legalmind/internal/domain/entities"
	legalUsecase "github.com/johnquangdev/legalmind/internal/usecase/legal"
	"github.com/johnquangdev/legalmind/pkg/config"
)

// ToDomainResponses converts the domain table to DTOs
func ToDomainResponses(domains []config.LegalDomain) []legal.DomainResponse {
	out := make([]legal.DomainResponse, 0, len(domains))
	for _, d := range domains {
		out = append(out, legal.DomainResponse{Key: d.Key, Name: d.Name, Description: d.Description})
	}
	return out
}

// ToActionResponse converts an Action entity to ActionResponse DTO
func ToActionResponse(a *entities.Action) legal.ActionResponse {
	return legal.ActionResponse{
		ID:          a.ID,
		MeetingID:   a.MeetingID,
		Domain:      a.Domain,
		DomainName:  config.DomainName(a.Domain),
		Title:       a.Title,
		Description: a.Description,
		Priority:    string(a.Priority),
		Deadline:    a.Deadline,
		Status:      string(a.Status),
		Assignee:    a.Assignee,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToActionResponses converts a list of actions
func ToActionResponses(actions []*entities.Action) []legal.ActionResponse {
	out := make([]legal.ActionResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, ToActionResponse(a))
	}
	return out
}

// ToInsightResponse converts an Insight entity to InsightResponse DTO
func ToInsightResponse(i *entities.Insight) legal.InsightResponse {
	tags := i.Tags
	if tags == nil {
		tags = []string{}
	}
	return legal.InsightResponse{
		ID:            i.ID,
		Domain:        i.Domain,
		DomainName:    config.DomainName(i.Domain),
		Title:         i.Title,
		Description:   i.Description,
		SourceMeeting: i.SourceMeeting,
		Importance:    string(i.Importance),
		Tags:          tags,
		CreatedAt:     i.CreatedAt,
	}
}

// ToInsightResponses converts a list of insights
func ToInsightResponses(insights []*entities.Insight) []legal.InsightResponse {
	out := make([]legal.InsightResponse, 0, len(insights))
	for _, i := range insights {
		out = append(out, ToInsightResponse(i))
	}
	return out
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) legal.MeetingResponse {
	participants := m.Participants
	if participants == nil {
		participants = []string{}
	}
	domains := m.DomainsProcessed
	if domains == nil {
		domains = []string{}
	}
	return legal.MeetingResponse{
		ID:                m.ID,
		Title:             m.Title,
		Date:              m.Date,
		BotID:             m.BotID,
		Participants:      participants,
		Duration:          m.DurationSeconds,
		TranscriptSummary: m.TranscriptSummary,
		DomainsProcessed:  domains,
		HasActionItems:    m.HasActionItems,
		HasInsights:       m.HasInsights,
		CreatedAt:         m.CreatedAt,
	}
}

// ToMeetingResponses converts a list of meetings
func ToMeetingResponses(meetings []*entities.Meeting) []legal.MeetingResponse {
	out := make([]legal.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToMeetingDetailsResponse converts a meeting with its records
func ToMeetingDetailsResponse(d *legalUsecase.MeetingDetails) legal.MeetingDetailsResponse {
	meeting := ToMeetingResponse(d.Meeting)
	actionCount, insightCount := len(d.Actions), len(d.Insights)
	meeting.ActionCount = &actionCount
	meeting.InsightCount = &insightCount

	return legal.MeetingDetailsResponse{
		Meeting:  meeting,
		Actions:  ToActionResponses(d.Actions),
		Insights: ToInsightResponses(d.Insights),
	}
}

// ToProcessResponse converts the outcome of a processed transcript
func ToProcessResponse(out *legalUsecase.ProcessOutput) legal.ProcessResponse {
	resp := legal.ProcessResponse{
		MeetingID:  out.MeetingID,
		Title:      out.Title,
		ActionIDs:  []string{},
		InsightIDs: []string{},
		Analysis:   out.Analysis,
	}
	if out.Records != nil {
		resp.ActionIDs = out.Records.ActionIDs
		resp.InsightIDs = out.Records.InsightIDs
	}
	return resp
}
