package vault

import (
	"testing"

	"vault/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvePrice(t *testing.T) {
	curve := DefaultCurve()
	require.Nil(t, curve.Validate())

	cases := map[string]struct {
		amountPaid   string
		marketValue  string
		cost         string
		retainedGain string
	}{
		"at fast cutoff floored to notional": {
			amountPaid: "100", marketValue: "103",
			// 103 * 0.97 = 99.91 < 100, floored
			cost: "100", retainedGain: "0",
		},
		"beyond terminal cutoff": {
			amountPaid: "100", marketValue: "112",
			cost: "110.88", retainedGain: "10.88",
		},
		"below fast cutoff": {
			amountPaid: "100", marketValue: "101",
			cost: "100", retainedGain: "0",
		},
		"capital loss sold at full notional": {
			amountPaid: "100", marketValue: "90",
			cost: "100", retainedGain: "0",
		},
		"fast region above floor": {
			amountPaid: "100", marketValue: "108",
			// 108 * 0.97 = 104.76
			cost: "104.76", retainedGain: "4.76",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cost, gain := curve.Price(number.Decimal(tc.amountPaid), number.Decimal(tc.marketValue))
			assert.True(t, number.Decimal(tc.cost).Equal(cost), "cost %s", cost)
			assert.True(t, number.Decimal(tc.retainedGain).Equal(gain), "gain %s", gain)
		})
	}
}

func TestCurvePriceNeverBelowNotional(t *testing.T) {
	curve := DefaultCurve()

	paids := []string{"1", "50", "100", "1234.5678"}
	values := []string{"0.5", "49", "103", "150", "100000"}

	for _, p := range paids {
		for _, v := range values {
			cost, gain := curve.Price(number.Decimal(p), number.Decimal(v))
			assert.True(t, cost.GreaterThanOrEqual(number.Decimal(p)), "%s/%s", p, v)
			assert.True(t, gain.GreaterThanOrEqual(decimal.Zero), "%s/%s", p, v)
			assert.True(t, gain.Equal(cost.Sub(number.Decimal(p))), "%s/%s", p, v)
		}
	}
}

func TestCurveValidate(t *testing.T) {
	base := DefaultCurve()

	t.Run("cutoffs out of order", func(t *testing.T) {
		c := base
		c.TerminalCutoff = number.Decimal("1.02")
		assert.NotNil(t, c.Validate())
	})

	t.Run("fast cutoff at breakeven", func(t *testing.T) {
		c := base
		c.FastCutoff = number.Decimal("1")
		assert.NotNil(t, c.Validate())
	})

	t.Run("terminal discount deeper than fast", func(t *testing.T) {
		c := base
		c.FastMultiplier = number.Decimal("0.99")
		c.TerminalMultiplier = number.Decimal("0.97")
		assert.NotNil(t, c.Validate())
	})

	t.Run("multiplier above one", func(t *testing.T) {
		c := base
		c.TerminalMultiplier = number.Decimal("1.01")
		assert.NotNil(t, c.Validate())
	})

	t.Run("zero multiplier", func(t *testing.T) {
		c := base
		c.FastMultiplier = decimal.Zero
		assert.NotNil(t, c.Validate())
	})
}
