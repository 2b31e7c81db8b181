package clean_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
	"github.com/fwojciec/bookvox/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCleaner(corrector bookvox.Corrector) *clean.Cleaner {
	c := clean.NewCleaner(corrector)
	c.RetryDelays = []time.Duration{time.Millisecond}
	return c
}

func correctorReturning(out string) *mock.Corrector {
	return &mock.Corrector{
		CorrectFn: func(_ context.Context, _ *bookvox.CorrectionRequest) (string, error) {
			return out, nil
		},
	}
}

func correctorFailing(err error) *mock.Corrector {
	return &mock.Corrector{
		CorrectFn: func(_ context.Context, _ *bookvox.CorrectionRequest) (string, error) {
			return "", err
		},
	}
}

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("returns corrected text", func(t *testing.T) {
		t.Parallel()

		raw := &bookvox.RawTranscript{Text: "Le chat  dort.Il rêve"}
		c := newTestCleaner(correctorReturning("Le chat dort. Il rêve"))

		got, err := c.Clean(context.Background(), raw, bookvox.TierConservative)

		require.NoError(t, err)
		assert.Equal(t, "Le chat dort. Il rêve", got.Text)
		assert.Equal(t, raw.Text, got.OriginalText)
		assert.Empty(t, got.Error)
		assert.False(t, got.Fallback())
		assert.Equal(t, bookvox.TierConservative, got.Tier)
		assert.Equal(t, bookvox.PolicyVersion, got.PolicyVersion)
		assert.Equal(t, map[string]int{"missing_space": 1}, got.Artifacts)
	})

	t.Run("sends rule-corrected text and tier prompt", func(t *testing.T) {
		t.Parallel()

		var req *bookvox.CorrectionRequest
		corrector := &mock.Corrector{
			CorrectFn: func(_ context.Context, r *bookvox.CorrectionRequest) (string, error) {
				req = r
				return r.SourceText, nil
			},
		}
		c := newTestCleaner(corrector)

		got, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "l'indé-\npendance"}, bookvox.TierBalanced)

		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, "l'indépendance", req.SourceText)
		assert.Equal(t, bookvox.TierBalanced, req.Tier)
		assert.Equal(t, bookvox.PolicyFor(bookvox.TierBalanced).Prompt(bookvox.Layout{}), req.TierPrompt)
		assert.Equal(t, "l'indépendance", got.Text)
	})

	t.Run("strips chat wrapping from the answer", func(t *testing.T) {
		t.Parallel()

		c := newTestCleaner(correctorReturning("Voici le texte corrigé :\n« Le chat dort. »"))

		got, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Le chat dort."}, bookvox.TierConservative)

		require.NoError(t, err)
		assert.Equal(t, "Le chat dort.", got.Text)
	})

	t.Run("normalizes the answer", func(t *testing.T) {
		t.Parallel()

		c := newTestCleaner(correctorReturning("Le  chat\n\n\n\ndort."))

		got, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Le chat\ndort."}, bookvox.TierConservative)

		require.NoError(t, err)
		assert.Equal(t, "Le chat\n\ndort.", got.Text)
	})

	t.Run("orders double page left then right", func(t *testing.T) {
		t.Parallel()

		raw := &bookvox.RawTranscript{
			Text:         "Page42Line1\nPage42Line2" + bookvox.PageBoundaryMarker + "Page43Line1\nPage43Line2",
			IsDoublePage: true,
		}
		c := newTestCleaner(clean.Passthrough{})

		got, err := c.Clean(context.Background(), raw, bookvox.TierConservative)

		require.NoError(t, err)
		assert.Equal(t, "Page42Line1\nPage42Line2\n\nPage43Line1\nPage43Line2", got.Text)
		assert.False(t, got.LayoutAmbiguous)
	})

	t.Run("flags ambiguous layout without reordering", func(t *testing.T) {
		t.Parallel()

		var prompt string
		corrector := &mock.Corrector{
			CorrectFn: func(_ context.Context, r *bookvox.CorrectionRequest) (string, error) {
				prompt = r.TierPrompt
				return r.SourceText, nil
			},
		}
		raw := &bookvox.RawTranscript{Text: "gauche un droite un\ngauche deux droite deux", IsDoublePage: true}
		c := newTestCleaner(corrector)

		got, err := c.Clean(context.Background(), raw, bookvox.TierConservative)

		require.NoError(t, err)
		assert.True(t, got.LayoutAmbiguous)
		assert.Equal(t, raw.Text, got.Text)
		assert.Contains(t, prompt, "Conserve strictement l'ordre")
	})

	t.Run("forces paragraphs in aggressive tier", func(t *testing.T) {
		t.Parallel()

		c := newTestCleaner(clean.Passthrough{})

		got, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Il était\nune fois.\n\n\n\nFin  du conte."}, bookvox.TierAggressive)

		require.NoError(t, err)
		assert.Equal(t, "Il était une fois.\n\nFin du conte.", got.Text)
	})

	t.Run("uses custom policy", func(t *testing.T) {
		t.Parallel()

		var req *bookvox.CorrectionRequest
		corrector := &mock.Corrector{
			CorrectFn: func(_ context.Context, r *bookvox.CorrectionRequest) (string, error) {
				req = r
				return r.SourceText, nil
			},
		}
		c := newTestCleaner(corrector)
		c.PolicyFunc = func(tier bookvox.Tier) bookvox.Policy {
			return bookvox.PolicyFor(tier).WithRepair(bookvox.RepairNever)
		}

		_, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Le chat dort."}, bookvox.TierAggressive)

		require.NoError(t, err)
		assert.Contains(t, req.TierPrompt, "Ne corrige jamais le sens")
	})

	t.Run("waits on the provider limiter", func(t *testing.T) {
		t.Parallel()

		var key string
		c := newTestCleaner(clean.Passthrough{})
		c.Provider = "groq"
		c.Limiter = &mock.Limiter{
			WaitFn: func(_ context.Context, k string) error {
				key = k
				return nil
			},
		}

		_, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Le chat dort."}, bookvox.TierConservative)

		require.NoError(t, err)
		assert.Equal(t, "groq", key)
	})
}

func TestCleaner_Clean_RejectsInput(t *testing.T) {
	t.Parallel()

	c := newTestCleaner(clean.Passthrough{})

	tests := map[string]struct {
		raw  *bookvox.RawTranscript
		tier bookvox.Tier
	}{
		"nil transcript": {nil, bookvox.TierConservative},
		"empty text":     {&bookvox.RawTranscript{Text: ""}, bookvox.TierConservative},
		"blank text":     {&bookvox.RawTranscript{Text: " \n "}, bookvox.TierConservative},
		"unknown tier":   {&bookvox.RawTranscript{Text: "Le chat"}, bookvox.Tier(9)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := c.Clean(context.Background(), tt.raw, tt.tier)

			assert.Nil(t, got)
			assert.Equal(t, bookvox.EINVALID, bookvox.ErrorCode(err))
		})
	}
}

func TestCleaner_Clean_FallsBack(t *testing.T) {
	t.Parallel()

	const text = "Le  chat dort.Il rêve\n\n\n\nd'une sou-\nris."

	tests := []struct {
		name      string
		cleaner   func() *clean.Cleaner
		wantCode  string
		wantError string
	}{
		{
			name:      "no correction service",
			cleaner:   func() *clean.Cleaner { return newTestCleaner(nil) },
			wantCode:  bookvox.EUNAVAILABLE,
			wantError: "correction service not configured",
		},
		{
			name:      "service error",
			cleaner:   func() *clean.Cleaner { return newTestCleaner(correctorFailing(errors.New("connection reset"))) },
			wantCode:  bookvox.EUPSTREAM,
			wantError: "correction failed: connection reset",
		},
		{
			name: "service unavailable after retries",
			cleaner: func() *clean.Cleaner {
				return newTestCleaner(correctorFailing(bookvox.Errorf(bookvox.EUNAVAILABLE, "groq returned 503")))
			},
			wantCode:  bookvox.EUNAVAILABLE,
			wantError: "groq returned 503",
		},
		{
			name:      "empty answer",
			cleaner:   func() *clean.Cleaner { return newTestCleaner(correctorReturning("  \n")) },
			wantCode:  bookvox.EUPSTREAM,
			wantError: "correction service returned empty text",
		},
		{
			name: "fabricated words",
			cleaner: func() *clean.Cleaner {
				return newTestCleaner(correctorReturning("Le chat dort paisiblement. Il rêve d'une souris."))
			},
			wantCode: bookvox.EUPSTREAM,
		},
		{
			name: "unrelated answer",
			cleaner: func() *clean.Cleaner {
				return newTestCleaner(correctorReturning("Je ne peux pas traiter cette demande."))
			},
			wantCode: bookvox.EUPSTREAM,
		},
		{
			name: "input over token limit",
			cleaner: func() *clean.Cleaner {
				c := newTestCleaner(clean.Passthrough{})
				c.MaxInputTokens = 10
				c.TokenCounter = &mock.TokenCounter{
					CountTokensFn: func(_ context.Context, _ string) (int, error) { return 11, nil },
				}
				return c
			},
			wantCode:  bookvox.EINVALID,
			wantError: "text is 11 tokens, over the 10 token limit",
		},
		{
			name: "limiter canceled",
			cleaner: func() *clean.Cleaner {
				c := newTestCleaner(clean.Passthrough{})
				c.Limiter = &mock.Limiter{
					WaitFn: func(_ context.Context, _ string) error { return context.Canceled },
				}
				return c
			},
			wantCode:  bookvox.EUNAVAILABLE,
			wantError: "correction canceled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.cleaner().Clean(context.Background(), &bookvox.RawTranscript{Text: text}, bookvox.TierBalanced)

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, text, got.Text)
			assert.Equal(t, text, got.OriginalText)
			assert.True(t, got.Fallback())
			assert.Equal(t, tt.wantCode, got.ErrorCode)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got.Error)
			}
		})
	}
}

func TestCleaner_Clean_Timeout(t *testing.T) {
	t.Parallel()

	corrector := &mock.Corrector{
		CorrectFn: func(ctx context.Context, _ *bookvox.CorrectionRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	c := newTestCleaner(corrector)
	c.Timeout = 20 * time.Millisecond

	start := time.Now()
	got, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Le chat dort."}, bookvox.TierConservative)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "Le chat dort.", got.Text)
	assert.Equal(t, bookvox.EUNAVAILABLE, got.ErrorCode)
	assert.Contains(t, got.Error, "timed out")
}

func TestCleaner_Clean_CallerCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := newTestCleaner(clean.Passthrough{}).Clean(ctx, &bookvox.RawTranscript{Text: "Le chat dort."}, bookvox.TierConservative)

	require.NoError(t, err)
	assert.Equal(t, "Le chat dort.", got.Text)
	assert.Equal(t, bookvox.EUNAVAILABLE, got.ErrorCode)
}

func TestCleaner_Clean_RetriesUnavailable(t *testing.T) {
	t.Parallel()

	calls := 0
	corrector := &mock.Corrector{
		CorrectFn: func(_ context.Context, r *bookvox.CorrectionRequest) (string, error) {
			calls++
			if calls == 1 {
				return "", bookvox.Errorf(bookvox.EUNAVAILABLE, "rate limited")
			}
			return r.SourceText, nil
		},
	}
	var retries []string
	c := newTestCleaner(corrector)
	c.Logf = func(format string, args ...any) { retries = append(retries, format) }

	got, err := c.Clean(context.Background(), &bookvox.RawTranscript{Text: "Le chat dort."}, bookvox.TierConservative)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, retries, 1)
	assert.False(t, got.Fallback())
}

func TestCleaner_Clean_NeverFabricates(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Le  chat | dort.Il rêve\n\n\n12\nd'une sou-\nris h h grise ____ x",
		"— Viens ! dit-elle.\n— Non.\naa bb\n~^",
		"CHAPITRE II\n\nIl était une fois,dans un pays lointain.",
	}
	for _, tier := range bookvox.Tiers() {
		for _, in := range inputs {
			got, err := newTestCleaner(clean.Passthrough{}).Clean(context.Background(), &bookvox.RawTranscript{Text: in}, tier)

			require.NoError(t, err)
			assert.Empty(t, got.Error, "tier %s, input %q", tier, in)
			stream := strings.Join(bookvox.Words(in), "")
			for _, w := range bookvox.ContentWords(got.Text) {
				assert.Contains(t, stream, w, "tier %s introduced %q", tier, w)
			}
		}
	}
}

func TestCleaner_Clean_FallbackIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"x",
		"Page 1" + bookvox.PageBoundaryMarker + "Page 2",
		"\t texte \r\n avec   espaces \n\n\n",
	}
	for _, tier := range bookvox.Tiers() {
		for _, double := range []bool{false, true} {
			for _, in := range inputs {
				raw := &bookvox.RawTranscript{Text: in, IsDoublePage: double}

				got, err := newTestCleaner(correctorFailing(errors.New("down"))).Clean(context.Background(), raw, tier)

				require.NoError(t, err)
				assert.Equal(t, in, got.Text)
				assert.NotEmpty(t, got.Error)
			}
		}
	}
}
