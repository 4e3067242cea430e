package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedTime = time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC)

func TestParsePriority(t *testing.T) {
	tests := map[string]Priority{
		"high":    PriorityHigh,
		" HIGH ":  PriorityHigh,
		"low":     PriorityLow,
		"medium":  PriorityMedium,
		"urgent":  PriorityMedium,
		"":        PriorityMedium,
		"Medium ": PriorityMedium,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePriority(in), "input %q", in)
	}
}

func TestParseImportance(t *testing.T) {
	assert.Equal(t, ImportanceCritical, ParseImportance("Critical"))
	assert.Equal(t, ImportanceMedium, ParseImportance("severe"))
	assert.True(t, ImportanceCritical.Rank() < ImportanceLow.Rank())
}

func TestActionStatus_Valid(t *testing.T) {
	assert.True(t, ActionStatusInProgress.Valid())
	assert.False(t, ActionStatus("blocked").Valid())
	assert.True(t, ActionStatusPending.Rank() < ActionStatusCancelled.Rank())
}

func TestClone_IsDeep(t *testing.T) {
	deadline := "2025-05-01"
	action := &Action{ID: "act-1", Deadline: &deadline}
	copied := action.Clone()
	*copied.Deadline = "changed"
	assert.Equal(t, "2025-05-01", *action.Deadline)

	insight := &Insight{ID: "ins-1", Tags: []string{"compliance"}}
	ic := insight.Clone()
	ic.Tags[0] = "changed"
	assert.Equal(t, "compliance", insight.Tags[0])

	meeting := &Meeting{ID: "m1", Participants: []string{"Alice"}, DomainsProcessed: []string{"contracts"}}
	mc := meeting.Clone()
	mc.Participants[0] = "Bob"
	mc.DomainsProcessed[0] = "ip_tech"
	assert.Equal(t, "Alice", meeting.Participants[0])
	assert.Equal(t, "contracts", meeting.DomainsProcessed[0])
}
