// Package pipeline runs one bulletin generation end to end:
// fetch forecast, compose text, synthesize audio, write the output file.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/somersetradio/weather-bulletin/internal/bulletin"
	"github.com/somersetradio/weather-bulletin/internal/forecast"
	"github.com/somersetradio/weather-bulletin/internal/speech"
	"github.com/somersetradio/weather-bulletin/internal/store"
)

// Pipeline wires the three stages together. Stages run strictly in order and
// the first failing stage aborts the run.
type Pipeline struct {
	logger       *zap.Logger
	provider     forecast.Provider
	synthesizer  speech.Synthesizer
	store        *store.MemoryStore
	coords       forecast.Coordinates
	locationName string
	outputFile   string

	now func() time.Time
}

func New(
	logger *zap.Logger,
	provider forecast.Provider,
	synthesizer speech.Synthesizer,
	st *store.MemoryStore,
	coords forecast.Coordinates,
	locationName, outputFile string,
) *Pipeline {
	return &Pipeline{
		logger:       logger,
		provider:     provider,
		synthesizer:  synthesizer,
		store:        st,
		coords:       coords,
		locationName: locationName,
		outputFile:   outputFile,
		now:          time.Now,
	}
}

// WithClock replaces the wall clock. Used by tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run generates one bulletin. On success the audio file at the configured
// path has been replaced and the bulletin recorded in the store. On failure
// the typed stage error is returned and nothing is written.
func (p *Pipeline) Run(ctx context.Context) (store.Bulletin, error) {
	now := p.now()

	f, err := p.provider.Fetch(ctx, p.coords)
	if err != nil {
		p.logger.Error("forecast fetch failed", zap.String("provider", p.provider.Name()), zap.Error(err))
		return store.Bulletin{}, err
	}
	p.logger.Info("forecast fetched",
		zap.String("provider", p.provider.Name()),
		zap.String("location", f.LocationName),
		zap.Int("steps", len(f.Steps)))

	text, err := bulletin.Compose(f, now, p.locationName)
	if err != nil {
		p.logger.Error("bulletin composition failed", zap.Error(err))
		return store.Bulletin{}, err
	}
	p.logger.Info("bulletin composed", zap.String("text", text))

	audio, err := p.synthesizer.Synthesize(ctx, text)
	if err != nil {
		p.logger.Error("speech synthesis failed", zap.String("synthesizer", p.synthesizer.Name()), zap.Error(err))
		return store.Bulletin{}, err
	}

	if err := speech.WriteAudio(p.outputFile, audio); err != nil {
		p.logger.Error("writing audio file failed", zap.String("path", p.outputFile), zap.Error(err))
		return store.Bulletin{}, err
	}
	p.logger.Info("audio file updated",
		zap.String("path", p.outputFile),
		zap.Int("bytes", len(audio)))

	b := store.Bulletin{
		ID:          uuid.NewString(),
		Text:        text,
		GeneratedAt: now.UTC(),
		AudioPath:   p.outputFile,
		AudioBytes:  len(audio),
	}
	p.store.Save(b)

	return b, nil
}
