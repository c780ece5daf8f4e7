package id

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/gofrs/uuid"
)

func TestGenTraceID(t *testing.T) {
	a, b := GenTraceID(), GenTraceID()
	assert.NotEqual(t, a, b)

	_, err := uuid.FromString(a)
	assert.Equal(t, nil, err)
}

func TestTraceIDFrom(t *testing.T) {
	a := TraceIDFrom("topup:2950")
	b := TraceIDFrom("topup:2950")
	assert.Equal(t, a, b)

	c := TraceIDFrom("topup:2951")
	assert.NotEqual(t, a, c)

	id, err := uuid.FromString(a)
	assert.Equal(t, nil, err)
	assert.Equal(t, byte(3), id.Version())
}
