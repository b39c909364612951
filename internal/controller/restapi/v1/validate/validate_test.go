package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Data string `validate:"required"`
	URL  string `validate:"omitempty,url"`
}

func TestMessage(t *testing.T) {
	v := New()

	require.Equal(t, "missing data", Message(v.Struct(sample{})))
	require.Equal(t, "invalid url", Message(v.Struct(sample{Data: "x", URL: "not a url"})))
	require.NoError(t, v.Struct(sample{Data: "x", URL: "https://example.com/a.jpg"}))

	require.Equal(t, "invalid request", Message(errors.New("boom")))
}
