package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sys/cpu"
)

// CurrentProfileVersion is bumped when the profile format or the meaning of
// its thresholds changes.
const CurrentProfileVersion = 1

// DefaultProfileFileName is stored in the user's home directory.
const DefaultProfileFileName = ".rnafold_calibration.json"

// DefaultMaxProfileAge is how long a profile is trusted.
const DefaultMaxProfileAge = 30 * 24 * time.Hour

// CalibrationProfile records the calibrated threshold and the machine it
// was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`
	CPUFeatures []string `json:"cpu_features,omitempty"`

	OptimalParallelThreshold int    `json:"optimal_parallel_threshold"`
	CalibrationLength        int    `json:"calibration_length"`
	CalibrationTime          string `json:"calibration_time"`
}

// NewProfile describes the current machine with no calibration yet.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    cpuFeatures(),
	}
}

// cpuFeatures lists the SIMD extensions that change fill throughput.
func cpuFeatures() []string {
	var f []string
	add := func(has bool, name string) {
		if has {
			f = append(f, name)
		}
	}
	add(cpu.X86.HasSSE42, "sse4.2")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasBMI2, "bmi2")
	add(cpu.X86.HasAVX512F, "avx512f")
	add(cpu.ARM64.HasASIMD, "asimd")
	add(cpu.ARM64.HasSVE, "sve")
	return f
}

// IsValid reports whether the profile was measured on hardware like this
// one, with the current format.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		slices.Equal(p.CPUFeatures, cpuFeatures())
}

// IsStale reports whether the profile is older than maxAge. A nil profile
// is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile (v%d, %s)\n", p.ProfileVersion, p.CalibratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  Machine: %d CPUs, %s/%s, %d-bit, %s\n", p.NumCPU, p.GOOS, p.GOARCH, p.WordSize, p.GoVersion)
	if len(p.CPUFeatures) > 0 {
		fmt.Fprintf(&b, "  CPU features: %s\n", strings.Join(p.CPUFeatures, " "))
	}
	fmt.Fprintf(&b, "  Parallel threshold: %d cells (length %d, took %s)\n",
		p.OptimalParallelThreshold, p.CalibrationLength, p.CalibrationTime)
	return b.String()
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads path, or returns a fresh profile and false when
// it cannot be read.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.rnafold_calibration.json, or the file
// name alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
