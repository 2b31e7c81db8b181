package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/mock"
	bvslog "github.com/fwojciec/bookvox/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCorrector_Correct(t *testing.T) {
	t.Parallel()

	t.Run("logs at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Corrector{
			CorrectFn: func(ctx context.Context, req *bookvox.CorrectionRequest) (string, error) {
				return "Bonjour.", nil
			},
		}

		corrector := bvslog.NewLoggingCorrector(inner, "groq", logger)
		out, err := corrector.Correct(context.Background(), &bookvox.CorrectionRequest{SourceText: "B0njour.", Tier: bookvox.TierAggressive})

		require.NoError(t, err)
		assert.Equal(t, "Bonjour.", out)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG msg=correct")
		assert.Contains(t, output, "provider=groq")
		assert.Contains(t, output, "tier=aggressive")
		assert.Contains(t, output, "in_bytes=8")
		assert.Contains(t, output, "out_bytes=8")
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Corrector{
			CorrectFn: func(ctx context.Context, req *bookvox.CorrectionRequest) (string, error) {
				return "x", nil
			},
		}

		_, err := bvslog.NewLoggingCorrector(inner, "gemini", logger).Correct(context.Background(), &bookvox.CorrectionRequest{SourceText: "x"})

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs image size and result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, img *bookvox.Image) (string, error) {
				return "Chapitre", nil
			},
		}

		text, err := bvslog.NewLoggingExtractor(inner, logger).Extract(context.Background(),
			&bookvox.Image{Data: make([]byte, 2048), MIMEType: "image/jpeg", IsDoublePage: true})

		require.NoError(t, err)
		assert.Equal(t, "Chapitre", text)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, `image="2.0 kB"`)
		assert.Contains(t, output, "mime=image/jpeg")
		assert.Contains(t, output, "double_page=true")
		assert.Contains(t, output, "chars=8")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, img *bookvox.Image) (string, error) {
				return "", errors.New("vision down")
			},
		}

		_, err := bvslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), &bookvox.Image{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="vision down"`)
	})
}

func TestLoggingSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Synthesizer{
		SynthesizeFn: func(ctx context.Context, text string) (*bookvox.Audio, error) {
			return &bookvox.Audio{Data: []byte("ID3"), ContentType: "audio/mpeg"}, nil
		},
	}

	audio, err := bvslog.NewLoggingSynthesizer(inner, logger).Synthesize(context.Background(), "Bonjour.")

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3"), audio.Data)
	output := buf.String()
	assert.Contains(t, output, "msg=synthesize")
	assert.Contains(t, output, "chars=8")
	assert.Contains(t, output, `audio="3 B"`)
	assert.NotContains(t, output, "Bonjour")
}
