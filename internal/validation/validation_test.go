package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{"handle valid", ValidateHandle, "test", false},
		{"handle empty", ValidateHandle, "", true},
		{"handle whitespace", ValidateHandle, "te st", true},
		{"handle max", ValidateHandle, strings.Repeat("h", 128), false},
		{"handle too long", ValidateHandle, strings.Repeat("h", 129), true},
		{"name valid", ValidateDisplayName, "Ann Lee", false},
		{"name blank", ValidateDisplayName, "   ", true},
		{"name too long", ValidateDisplayName, strings.Repeat("n", 31), true},
		{"content max", ValidateContent, strings.Repeat("c", 280), false},
		{"content multibyte max", ValidateContent, strings.Repeat("ж", 280), false},
		{"content too long", ValidateContent, strings.Repeat("c", 281), true},
		{"content blank", ValidateContent, "\n\t", true},
		{"link valid", ValidateLink, "media/test/a.png", false},
		{"link too long", ValidateLink, strings.Repeat("l", 101), true},
		{"link empty", ValidateLink, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
