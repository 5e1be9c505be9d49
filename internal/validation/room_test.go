package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoomName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "deed of sale"},
		{name: "cyrillic", input: "сделка купли-продажи"},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "ab", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxRoomNameLen+1), wantErr: true},
		{name: "boundary", input: strings.Repeat("a", MaxRoomNameLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	assert.NoError(t, ValidateDisplayName("Maria"))
	assert.Error(t, ValidateDisplayName(""))
	assert.Error(t, ValidateDisplayName(strings.Repeat("a", MaxDisplayNameLen+1)))
}

func TestValidatePasscode(t *testing.T) {
	assert.NoError(t, ValidatePasscode("correct horse"))
	assert.Error(t, ValidatePasscode(""))
	assert.Error(t, ValidatePasscode("short"))
}
