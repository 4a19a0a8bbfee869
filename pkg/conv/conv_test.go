package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{in: 3, want: 3, wantOK: true},
		{in: int64(4), want: 4, wantOK: true},
		{in: 5.0, want: 5, wantOK: true},
		{in: 2.5, wantOK: false},
		{in: "7", wantOK: false},
		{in: nil, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ToInt(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ToInt(%v)", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestSliceAnyToString(t *testing.T) {
	assert.Equal(t, []string{"a", "12", "7"}, SliceAnyToString([]any{"a", 12, 7.0, []int{1}}))
	assert.Equal(t, []string{"x"}, SliceAnyToString([]string{"x"}))
	assert.Nil(t, SliceAnyToString(nil))
	assert.Nil(t, SliceAnyToString("x"))
}

func TestConfigGetters(t *testing.T) {
	cfg := map[string]any{
		"n":         3.0,
		"tolerance": 1e-6,
		"zero":      0,
		"expr":      "item.score > 0",
		"bad":       "x",
	}
	assert.Equal(t, 3, ConfigGetInt(cfg, "n", 10))
	assert.Equal(t, 10, ConfigGetInt(cfg, "missing", 10))
	assert.Equal(t, 10, ConfigGetInt(cfg, "bad", 10))
	assert.Equal(t, 1e-6, ConfigGetFloat64(cfg, "tolerance", 1))
	assert.Equal(t, 0.0, ConfigGetFloat64(cfg, "zero", 1))
	assert.Equal(t, "item.score > 0", ConfigGet(cfg, "expr", ""))
	assert.Equal(t, "d", ConfigGet(cfg, "n", "d"))
	assert.Equal(t, 7, ConfigGetInt(nil, "n", 7))
}
