package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTTS struct {
	resp *texttospeechpb.SynthesizeSpeechResponse
	err  error
	got  *texttospeechpb.SynthesizeSpeechRequest
}

func (s *stubTTS) SynthesizeSpeech(_ context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	s.got = req
	return s.resp, s.err
}

func TestGoogleTTS_Synthesize(t *testing.T) {
	stub := &stubTTS{resp: &texttospeechpb.SynthesizeSpeechResponse{AudioContent: []byte("ID3")}}
	g := &GoogleTTS{client: stub}

	audio, err := g.Synthesize(context.Background(), "Bonjour", "fr")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3"), audio)
	assert.Equal(t, "fr-FR", stub.got.GetVoice().GetLanguageCode())
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, stub.got.GetAudioConfig().GetAudioEncoding())
	assert.Equal(t, "Bonjour", stub.got.GetInput().GetText())
}

func TestGoogleTTS_ClientError(t *testing.T) {
	g := &GoogleTTS{client: &stubTTS{err: errors.New("permission denied")}}
	_, err := g.Synthesize(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, ErrSynthesis)
}

func TestGoogleTTS_EmptyText(t *testing.T) {
	stub := &stubTTS{}
	g := &GoogleTTS{client: stub}
	_, err := g.Synthesize(context.Background(), "  ", "en")
	assert.ErrorIs(t, err, ErrSynthesis)
	assert.Nil(t, stub.got)
}

func TestGoogleTTS_EmptyAudio(t *testing.T) {
	g := &GoogleTTS{client: &stubTTS{resp: &texttospeechpb.SynthesizeSpeechResponse{}}}
	_, err := g.Synthesize(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, ErrSynthesis)
}

func TestVoiceLocale(t *testing.T) {
	assert.Equal(t, "te-IN", VoiceLocale("te"))
	assert.Equal(t, "cmn-CN", VoiceLocale("zh"))
	assert.Equal(t, "en-US", VoiceLocale("xx"))
}

func TestTruncateUTF8(t *testing.T) {
	s := strings.Repeat("é", 10) // 20 bytes
	got := truncateUTF8(s, 5)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 4, len(got))
	assert.Equal(t, "abc", truncateUTF8("abc", 5))
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Synthesize(context.Background(), "x", "en")
	assert.ErrorIs(t, err, ErrDisabled)
}
