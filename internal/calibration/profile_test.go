package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	require.NotNil(t, profile)

	assert.Equal(t, runtime.NumCPU(), profile.NumCPU)
	assert.Equal(t, runtime.GOARCH, profile.GOARCH)
	assert.Equal(t, runtime.GOOS, profile.GOOS)
	assert.Equal(t, runtime.Version(), profile.GoVersion)
	assert.Equal(t, CurrentProfileVersion, profile.ProfileVersion)
	assert.Equal(t, 32<<(^uint(0)>>63), profile.WordSize)
	assert.False(t, profile.CalibratedAt.IsZero())
}

func TestProfileSaveLoad(t *testing.T) {
	t.Parallel()
	profilePath := filepath.Join(t.TempDir(), "nested", "profile.json")

	original := NewProfile()
	original.OptimalParallelThreshold = 512
	original.CalibrationLength = 1200
	original.CalibrationTime = "4.2s"
	require.NoError(t, original.SaveProfile(profilePath))

	loaded, err := loadProfile(profilePath)
	require.NoError(t, err)
	assert.Equal(t, original.OptimalParallelThreshold, loaded.OptimalParallelThreshold)
	assert.Equal(t, original.CalibrationLength, loaded.CalibrationLength)
	assert.Equal(t, original.CalibrationTime, loaded.CalibrationTime)
	assert.Equal(t, original.NumCPU, loaded.NumCPU)
	assert.True(t, loaded.IsValid(), "a saved profile reloads as valid on the same machine")
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*CalibrationProfile)
		want   bool
	}{
		{"current hardware", func(*CalibrationProfile) {}, true},
		{"wrong cpu count", func(p *CalibrationProfile) { p.NumCPU = 999 }, false},
		{"wrong arch", func(p *CalibrationProfile) { p.GOARCH = "invalid_arch" }, false},
		{"wrong word size", func(p *CalibrationProfile) { p.WordSize = 16 }, false},
		{"wrong version", func(p *CalibrationProfile) { p.ProfileVersion = 999 }, false},
		{"wrong features", func(p *CalibrationProfile) { p.CPUFeatures = append(p.CPUFeatures, "made-up") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProfile()
			tt.mutate(p)
			assert.Equal(t, tt.want, p.IsValid())
		})
	}

	var nilProfile *CalibrationProfile
	assert.False(t, nilProfile.IsValid())
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	assert.False(t, profile.IsStale(time.Hour))

	profile.CalibratedAt = time.Now().Add(-2 * time.Hour)
	assert.True(t, profile.IsStale(time.Hour))

	var nilProfile *CalibrationProfile
	assert.True(t, nilProfile.IsStale(time.Hour))
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	profile.OptimalParallelThreshold = 256
	profile.CalibrationLength = 1200

	str := profile.String()
	assert.Contains(t, str, "Parallel threshold: 256 cells")
	assert.Contains(t, str, "length 1200")
	assert.Contains(t, str, runtime.GOARCH)
}

func TestLoadProfileErrors(t *testing.T) {
	t.Parallel()
	_, err := loadProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	invalidPath := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalidPath, []byte("not valid json"), 0o644))
	_, err = loadProfile(invalidPath)
	assert.ErrorContains(t, err, "decoding profile")
}

func TestLoadOrCreateProfile(t *testing.T) {
	t.Parallel()
	profilePath := filepath.Join(t.TempDir(), "profile.json")

	profile, loaded := LoadOrCreateProfile(profilePath)
	assert.False(t, loaded)
	require.NotNil(t, profile)

	profile.OptimalParallelThreshold = 1024
	require.NoError(t, profile.SaveProfile(profilePath))

	profile2, loaded2 := LoadOrCreateProfile(profilePath)
	assert.True(t, loaded2)
	assert.Equal(t, 1024, profile2.OptimalParallelThreshold)
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	path := GetDefaultProfilePath()
	assert.Equal(t, DefaultProfileFileName, filepath.Base(path))
}
