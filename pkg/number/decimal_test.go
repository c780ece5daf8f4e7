package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestDecimal(t *testing.T) {
	assert.Equal(t, "1.03", Decimal("1.03").String())
	assert.Equal(t, "0", Decimal("not a number").String())
}

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"1.990000001": "2",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}
