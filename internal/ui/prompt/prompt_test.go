package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_ConsecutiveLines(t *testing.T) {
	var out bytes.Buffer
	p := NewStandardPrompter(strings.NewReader("jane\n  doe  \nlast"), &out)

	first, err := p.Ask("Enter your first name: ")
	require.NoError(t, err)
	assert.Equal(t, "jane", first)

	last, err := p.Ask("Enter your last name: ")
	require.NoError(t, err)
	assert.Equal(t, "doe", last)

	tail, err := p.Ask("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", tail)

	_, err = p.Ask("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Enter your first name: Enter your last name: > > ", out.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		want     bool
		wantErr  bool
	}{
		{name: "matching value", input: "alpha\n", expected: "alpha", want: true},
		{name: "mismatch", input: "beta\n", expected: "alpha", want: false},
		{name: "end of input", input: "", expected: "alpha", want: false},
		{name: "empty expectation", input: "alpha\n", expected: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewStandardPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Delete bucket?", tt.expected)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "To confirm, please type the name 'alpha': ")
		})
	}
}
