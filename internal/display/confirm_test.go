package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfirmAnswer(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{"", true, true, false},
		{"", false, false, false},
		{"   ", true, true, false},
		{"y", false, true, false},
		{"Y", false, true, false},
		{"yes", false, true, false},
		{" YES ", false, true, false},
		{"n", true, false, false},
		{"No", true, false, false},
		{"maybe", true, false, true},
		{"yess", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseConfirmAnswer(tt.input, tt.defaultYes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineConfirmer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
	}{
		{"enter accepts default", "\n", true, nil},
		{"explicit yes", "y\n", true, nil},
		{"explicit no", "no\n", false, nil},
		{"invalid then no", "what\nn\n", false, nil},
		{"no trailing newline", "yes", true, nil},
		{"end of input", "", false, ErrNoAnswer},
		{"only invalid answers", "what\nhuh\n", false, ErrNoAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _ := captureOutput(t)
			c := &LineConfirmer{In: strings.NewReader(tt.input)}

			got, err := c.Confirm("Execute.:\n\nls\n\n", "Pressing enter you confirm execution of this command", true)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, stdout.String(), "Execute.:")
			assert.Contains(t, stdout.String(), "[Pressing enter you confirm execution of this command]")
			assert.Contains(t, stdout.String(), "(Y/n)")
		})
	}
}

func TestYesNoHint(t *testing.T) {
	assert.Equal(t, "(Y/n) ", yesNoHint(true))
	assert.Equal(t, "(y/N) ", yesNoHint(false))
}
