package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "12", Number(12))
	assert.Equal(t, "1,234,567", Number(1234567))
	assert.Equal(t, "100,000", Number(100000))
	assert.Equal(t, "-1,000", Number(-1000))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "512B", Bytes(512))
	assert.Equal(t, "1.5KiB", Bytes(1536))
	assert.Equal(t, "5.0MiB", Bytes(5<<20))
	assert.Equal(t, "2.0GiB", Bytes(2<<30))
}

func TestRate(t *testing.T) {
	assert.Equal(t, "12.50", Rate(12.5))
	assert.Equal(t, "1.50K", Rate(1500))
	assert.Equal(t, "2.00M", Rate(2e6))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(500*time.Millisecond))
	assert.Equal(t, "5.2s", Duration(5200*time.Millisecond))
	assert.Equal(t, "3m5.0s", Duration(3*time.Minute+5*time.Second))
	assert.Equal(t, "2h15m", Duration(2*time.Hour+15*time.Minute))
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"spr_Player":       "spr_player",
		"Test Game":        "test_game",
		"../../etc/passwd": "etc_passwd",
		"a//b  c":          "a_b_c",
		"snd_jump.ogg":     "snd_jump.ogg",
		"___":              "",
		"ÜberFont":         "berfont",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}

func TestParseVersionInfo(t *testing.T) {
	v, err := ParseVersionInfo("2.3.7.606")
	require.NoError(t, err)
	assert.Equal(t, VersionInfo{Major: 2, Minor: 3, Release: 7, Build: 606}, *v)
	assert.Equal(t, "2.3.7.606", v.String())

	v, err = ParseVersionInfo("1.4")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Build)

	for _, bad := range []string{"", "1", "a.b", "1.2.3.4.5", "1.-2"} {
		_, err := ParseVersionInfo(bad)
		assert.Error(t, err, bad)
	}
}

func TestCompareVersions(t *testing.T) {
	cmp, err := CompareVersions("1.4.9999", "2.0")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareVersions("2.0.0.0", "2.0")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	ok, err := IsKnownLayout("2.2.6.95")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsKnownLayout("2.3.0.529")
	require.NoError(t, err)
	assert.False(t, ok)
}
