package speech

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/somersetradio/weather-bulletin/internal/common"
)

// VoiceConfig selects the voice and audio shaping for synthesized bulletins.
type VoiceConfig struct {
	LanguageCode string
	Name         string
	SpeakingRate float64
	VolumeGainDB float64
	Pitch        float64
}

// GoogleSynthesizer speaks text through the Google Cloud Text-to-Speech API
// and returns LINEAR16 (wav) audio.
type GoogleSynthesizer struct {
	logger *zap.Logger
	client *texttospeech.Client
	voice  VoiceConfig
}

// NewGoogleSynthesizer dials the TTS API using the given service account
// credentials file. Close the synthesizer when done.
func NewGoogleSynthesizer(ctx context.Context, logger *zap.Logger, credsFile string, voice VoiceConfig) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credsFile))
	if err != nil {
		return nil, &SynthesisError{Provider: "google", Reason: "creating client", Err: err}
	}
	return &GoogleSynthesizer{
		logger: logger,
		client: client,
		voice:  voice,
	}, nil
}

func (g *GoogleSynthesizer) Name() string {
	return "google"
}

func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, &SynthesisError{Provider: g.Name(), Reason: "empty bulletin text"}
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		// The voice name fully selects the voice; gender is implied by it.
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.voice.LanguageCode,
			Name:         g.voice.Name,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
			SpeakingRate:  g.voice.SpeakingRate,
			VolumeGainDb:  g.voice.VolumeGainDB,
			Pitch:         g.voice.Pitch,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, &SynthesisError{Provider: g.Name(), Reason: classifyError(err), Err: err}
	}

	g.logger.Info("synthesized bulletin audio",
		zap.Int("text_length", len(text)),
		zap.Int("audio_bytes", len(resp.AudioContent)))

	return resp.AudioContent, nil
}

// classifyError names the failure for the wrapped SynthesisError. gRPC status
// codes cover API-side failures; credential file problems surface as plain
// errors and are matched by message.
func classifyError(err error) string {
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return "quota exceeded"
	case codes.Unauthenticated, codes.PermissionDenied:
		return "authentication failed"
	case codes.InvalidArgument:
		return "unsupported text"
	}
	if common.HasAny(err.Error(), "credentials", "oauth2", "token") {
		return "authentication failed"
	}
	return "request failed"
}
