package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type joinRequest struct {
	MeetingLink string `json:"meeting_link" validate:"required,url"`
	BotName     string `json:"bot_name,omitempty" validate:"omitempty,max=5"`
}

type listRequest struct {
	Sort string `query:"sort" validate:"omitempty,oneof=newest oldest"`
}

func TestValidate_FieldsUseTagNames(t *testing.T) {
	v := New()

	err := v.Validate(&joinRequest{BotName: "LegalMind"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"meeting_link": "required",
		"bot_name":     "max=5",
	}, Fields(err))

	err = v.Validate(&listRequest{Sort: "random"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"sort": "oneof=newest oldest"}, Fields(err))
}

func TestValidate_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&joinRequest{MeetingLink: "https://zoom.us/j/1"}))
	assert.NoError(t, v.Validate(&listRequest{}))
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(errors.New("boom")))
	assert.Nil(t, Fields(nil))
}
