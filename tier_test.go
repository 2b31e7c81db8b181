package bookvox_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/bookvox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bookvox.Tier
	}{
		{"conservative", bookvox.TierConservative},
		{"Balanced", bookvox.TierBalanced},
		{" AGGRESSIVE ", bookvox.TierAggressive},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := bookvox.ParseTier(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTier_Unknown(t *testing.T) {
	t.Parallel()

	_, err := bookvox.ParseTier("reckless")

	require.Error(t, err)
	assert.Equal(t, bookvox.EINVALID, bookvox.ErrorCode(err))
}

func TestTier_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "balanced", bookvox.TierBalanced.String())
	assert.Equal(t, "unknown", bookvox.Tier(9).String())
}

func TestTiers_AscendingOrder(t *testing.T) {
	t.Parallel()

	tiers := bookvox.Tiers()

	require.Len(t, tiers, 3)
	assert.Equal(t, bookvox.TierConservative, tiers[0])
	assert.Equal(t, bookvox.TierAggressive, tiers[2])
	assert.Equal(t, bookvox.TierConservative, bookvox.DefaultTier)
}

func TestTier_JSON(t *testing.T) {
	t.Parallel()

	var req struct {
		Tier bookvox.Tier `json:"tier"`
	}
	err := json.Unmarshal([]byte(`{"tier":"aggressive"}`), &req)

	require.NoError(t, err)
	assert.Equal(t, bookvox.TierAggressive, req.Tier)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"aggressive"}`, string(b))
}

func TestTier_JSONRejectsUnknown(t *testing.T) {
	t.Parallel()

	var req struct {
		Tier bookvox.Tier `json:"tier"`
	}
	err := json.Unmarshal([]byte(`{"tier":"wild"}`), &req)

	assert.Error(t, err)
}
