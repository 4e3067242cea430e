package ai

import (
	"context"
	"errors"
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscripts struct {
	transcript aai.Transcript
	err        error
	gotURL     string
	gotParams  *aai.TranscriptOptionalParams
}

func (f *fakeTranscripts) TranscribeFromURL(_ context.Context, audioURL string, opts *aai.TranscriptOptionalParams) (aai.Transcript, error) {
	f.gotURL = audioURL
	f.gotParams = opts
	return f.transcript, f.err
}

func TestUtterancesToEntries(t *testing.T) {
	utterances := []aai.TranscriptUtterance{
		{
			Speaker: aai.String("A"),
			Text:    aai.String("Let's review the NDA."),
			Words: []aai.TranscriptWord{
				{Text: aai.String("Let's"), Start: aai.Int64(1500), End: aai.Int64(1800)},
				{Text: aai.String("review"), Start: aai.Int64(1800), End: aai.Int64(2100)},
			},
		},
		{
			Speaker: aai.String("B"),
			Text:    aai.String("Agreed."),
			Start:   aai.Int64(65000),
			End:     aai.Int64(65500),
		},
		{
			Text: aai.String("(inaudible)"),
		},
	}

	entries := UtterancesToEntries(utterances)
	require.Len(t, entries, 3)

	assert.Equal(t, "Speaker A", entries[0].Speaker)
	assert.Equal(t, "Let's review the NDA.", entries[0].Transcript)
	require.Len(t, entries[0].Words, 2)
	assert.Equal(t, 1.5, entries[0].Words[0].Start)

	require.Len(t, entries[1].Words, 1)
	assert.Equal(t, 65.0, entries[1].Words[0].Start)

	assert.Empty(t, entries[2].Speaker)
	assert.Empty(t, entries[2].Words)
}

func TestAssemblyAITranscriber_Transcribe(t *testing.T) {
	fake := &fakeTranscripts{transcript: aai.Transcript{
		ID:     aai.String("tr-1"),
		Status: aai.TranscriptStatusCompleted,
		Utterances: []aai.TranscriptUtterance{
			{Speaker: aai.String("A"), Text: aai.String("Hello"), Start: aai.Int64(0)},
		},
	}}
	tr := &AssemblyAITranscriber{transcripts: fake}

	entries, err := tr.Transcribe(context.Background(), "https://example.com/audio.mp3")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com/audio.mp3", fake.gotURL)
	require.NotNil(t, fake.gotParams.SpeakerLabels)
	assert.True(t, *fake.gotParams.SpeakerLabels)
}

func TestAssemblyAITranscriber_Errors(t *testing.T) {
	tr := &AssemblyAITranscriber{transcripts: &fakeTranscripts{}}
	_, err := tr.Transcribe(context.Background(), "")
	assert.EqualError(t, err, "audio URL is required")

	tr = &AssemblyAITranscriber{transcripts: &fakeTranscripts{err: errors.New("network down")}}
	_, err = tr.Transcribe(context.Background(), "https://example.com/a.mp3")
	assert.ErrorContains(t, err, "network down")

	tr = &AssemblyAITranscriber{transcripts: &fakeTranscripts{transcript: aai.Transcript{
		Status: aai.TranscriptStatusError,
		Error:  aai.String("unsupported media"),
	}}}
	_, err = tr.Transcribe(context.Background(), "https://example.com/a.mp3")
	assert.EqualError(t, err, "assemblyai error: unsupported media")
}
