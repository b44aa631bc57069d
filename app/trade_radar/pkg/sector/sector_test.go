package sector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain", raw: "pharmaceuticals", want: "pharmaceuticals"},
		{name: "trimmed", raw: "  renewable energy  ", want: "renewable energy"},
		{name: "hyphen and digits", raw: "e-commerce 2", want: "e-commerce 2"},
		{name: "strips specials", raw: "metals & mining!", want: "metals  mining"},
		{name: "empty", raw: "", wantErr: ErrEmpty},
		{name: "blank", raw: "   \t", wantErr: ErrEmpty},
		{name: "too short", raw: "ab", wantErr: ErrTooShort},
		{name: "too short after cleaning", raw: "a$$$b", wantErr: ErrTooShort},
		{name: "only specials", raw: "@@@", wantErr: ErrTooShort},
		{name: "max length", raw: strings.Repeat("a", MaxLength), want: strings.Repeat("a", MaxLength)},
		{name: "too long", raw: strings.Repeat("a", MaxLength+1), wantErr: ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateKeepsAllowedInput(t *testing.T) {
	for _, raw := range []string{"abc", "Food Processing", "IT-BPM 2030", strings.Repeat("x-", 50)} {
		got, err := Validate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, got)
	}
}

func TestTitleAndSlug(t *testing.T) {
	assert.Equal(t, "Renewable Energy", Title("renewable energy"))
	assert.Equal(t, "renewable_energy", Slug("Renewable Energy"))
	assert.Equal(t, "e-commerce", Slug("E-commerce"))
}
