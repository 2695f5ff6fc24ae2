package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "mymyunsw/pkg/domain-errors"
)

func TestValidateArgumentCount(t *testing.T) {
	const usage = "Usage: q5 zID [Program Stream]"

	tests := []struct {
		name    string
		args    []string
		min     int
		max     int
		wantErr bool
	}{
		{"none when one required", nil, 1, 1, true},
		{"exactly one", []string{"z1234567"}, 1, 1, false},
		{"two when one allowed", []string{"a", "b"}, 1, 1, true},
		{"optional trailing within range", []string{"a", "b", "c"}, 1, 3, false},
		{"too many for range", []string{"a", "b", "c", "d"}, 1, 3, true},
		{"unbounded maximum", []string{"a", "b", "c", "d", "e"}, 1, Unbounded, false},
		{"unbounded still needs minimum", nil, 1, Unbounded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgumentCount(tt.args, tt.min, tt.max, usage)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUsage))
			assert.Equal(t, usage, err.Error())
		})
	}
}
