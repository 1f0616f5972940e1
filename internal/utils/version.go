package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstUnknownLayout is the first engine version whose chunk layouts this
// tool does not decode. It added fields to several chunks.
const FirstUnknownLayout = "2.3"

// VersionInfo represents parsed version components
type VersionInfo struct {
	Major   int
	Minor   int
	Release int
	Build   int
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Release, v.Build)
}

// ParseVersionInfo parses a full version string (e.g., "2.3.7.606") into components
func ParseVersionInfo(version string) (*VersionInfo, error) {
	if version == "" {
		return nil, fmt.Errorf("version string cannot be empty")
	}

	parts := strings.Split(version, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return nil, fmt.Errorf("invalid version format: %s (expected major.minor[.release[.build]])", version)
	}

	info := &VersionInfo{}
	fields := []*int{&info.Major, &info.Minor, &info.Release, &info.Build}
	names := []string{"major", "minor", "release", "build"}

	for i, part := range parts {
		if part == "" && i >= 2 {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s version: %s", names[i], part)
		}
		*fields[i] = n
	}

	return info, nil
}

// CompareVersions compares two version strings
// Returns -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2
func CompareVersions(v1, v2 string) (int, error) {
	info1, err := ParseVersionInfo(v1)
	if err != nil {
		return 0, fmt.Errorf("error parsing version %s: %w", v1, err)
	}

	info2, err := ParseVersionInfo(v2)
	if err != nil {
		return 0, fmt.Errorf("error parsing version %s: %w", v2, err)
	}

	a := []int{info1.Major, info1.Minor, info1.Release, info1.Build}
	b := []int{info2.Major, info2.Minor, info2.Release, info2.Build}
	for i := range a {
		if a[i] < b[i] {
			return -1, nil
		}
		if a[i] > b[i] {
			return 1, nil
		}
	}

	return 0, nil
}

// IsKnownLayout reports whether an archive built by the given engine
// version uses chunk layouts this tool understands
func IsKnownLayout(version string) (bool, error) {
	cmp, err := CompareVersions(version, FirstUnknownLayout)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}
