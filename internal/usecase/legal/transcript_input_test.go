package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
)

func TestDecodeTranscriptInput(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		raw     int
		entries int
	}{
		{"provider list", `[{"speaker":"A","transcript":"hi","words":[{"word":"hi","start":1,"end":1.2}]}]`, 1, 0},
		{"provider wrapped", `{"transcript":[{"speaker":"A","transcript":"hi"},{"speaker":"B","transcript":"yo"}]}`, 2, 0},
		{"canonical list", `[{"speaker":"A","timestamp":"00:00","text":"hi"}]`, 0, 1},
		{"canonical wrapped", `{"transcript":[{"speaker":"A","timestamp":"00:00","text":"hi"}]}`, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeTranscriptInput([]byte(tt.data))
			require.NoError(t, err)
			assert.Len(t, in.Raw, tt.raw)
			assert.Len(t, in.Transcript.Entries, tt.entries)
		})
	}
}

func TestDecodeTranscriptInput_Errors(t *testing.T) {
	_, err := DecodeTranscriptInput([]byte(`[]`))
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyTranscript)

	_, err = DecodeTranscriptInput([]byte(`{"transcript": []}`))
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyTranscript)

	_, err = DecodeTranscriptInput([]byte(`not json`))
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	_, err = DecodeTranscriptInput(nil)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}
