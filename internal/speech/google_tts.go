package speech

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// maxInputBytes is the Text-to-Speech per-request input limit.
const maxInputBytes = 5000

// voiceLocales maps short language codes to a locale with voices available.
var voiceLocales = map[string]string{
	"en": "en-US",
	"hi": "hi-IN",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"zh": "cmn-CN",
	"ja": "ja-JP",
	"ar": "ar-XA",
	"ru": "ru-RU",
	"pt": "pt-BR",
	"te": "te-IN",
}

// VoiceLocale returns the TTS locale for a language code, defaulting to en-US.
func VoiceLocale(languageCode string) string {
	if l, ok := voiceLocales[languageCode]; ok {
		return l
	}
	return "en-US"
}

type ttsClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

// GoogleTTS is a Synthesizer backed by Google Cloud Text-to-Speech.
type GoogleTTS struct {
	client ttsClient
	closer func() error
}

// NewGoogleTTS creates a Text-to-Speech client. With an empty credentialsFile
// it relies on Application Default Credentials.
func NewGoogleTTS(ctx context.Context, credentialsFile string) (*GoogleTTS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}
	return &GoogleTTS{client: cloudClient{client}, closer: client.Close}, nil
}

// cloudClient drops the variadic call options so the SDK client fits ttsClient.
type cloudClient struct {
	c *texttospeech.Client
}

func (c cloudClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	return c.c.SynthesizeSpeech(ctx, req)
}

// Close cleans up the client connection.
func (g *GoogleTTS) Close() {
	if g.closer != nil {
		_ = g.closer()
	}
}

// Synthesize renders text as MP3. Text beyond the API input limit is truncated
// on a rune boundary.
func (g *GoogleTTS) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	text = truncateUTF8(strings.TrimSpace(text), maxInputBytes)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrSynthesis)
	}

	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: VoiceLocale(languageCode),
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("%w: empty audio content", ErrSynthesis)
	}
	return resp.GetAudioContent(), nil
}

func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
