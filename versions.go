package go_javad

import (
	"fmt"
	"strconv"
	"strings"
)

// Class file versions, encoded as minor<<16 | major.
const (
	V1_1 = 3<<16 | 45
	V1_2 = 46
	V1_3 = 47
	V1_4 = 48
	V1_5 = 49
	V1_6 = 50
	V1_7 = 51
	V1_8 = 52
	V9   = 53
	V10  = 54
	V11  = 55
	V12  = 56
	V13  = 57
	V14  = 58
	V15  = 59
	V16  = 60
	V17  = 61
	V18  = 62
	V19  = 63
	V20  = 64
	V21  = 65
	V22  = 66
	V23  = 67

	// V_PREVIEW is the minor version marking a class that uses preview features.
	V_PREVIEW = 0xFFFF0000
)

const (
	minMajorSupportedVersion = 45
	maxMajorSupportedVersion = V23
)

// majorVersion strips the minor version. Every version threshold is compared against it.
func majorVersion(version int) int {
	return version & 0xFFFF
}

// VersionName returns the Java release name of a class file version, e.g. "1.5" or "17".
func VersionName(version int) string {
	major := majorVersion(version)
	switch {
	case major < minMajorSupportedVersion:
		return fmt.Sprintf("major %d", major)
	case major <= V1_8:
		return fmt.Sprintf("1.%d", major-44)
	default:
		return strconv.Itoa(major - 44)
	}
}

// ParseVersion reads a class file version written as a constant name ("V1_8", "V17"),
// a release name ("1.8", "17") or a raw major version ("52").
func ParseVersion(s string) (int, error) {
	name := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(name, "V"); ok {
		name = strings.ReplaceAll(rest, "_", ".")
	}
	var major int
	if rest, ok := strings.CutPrefix(name, "1."); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid class version %q", s)
		}
		major = n + 44
	} else {
		n, err := strconv.Atoi(name)
		if err != nil {
			return 0, fmt.Errorf("invalid class version %q", s)
		}
		if n >= minMajorSupportedVersion {
			major = n
		} else {
			major = n + 44
		}
	}
	if major < minMajorSupportedVersion || major > maxMajorSupportedVersion {
		return 0, fmt.Errorf("class version %q is out of the supported range %s..%s", s, VersionName(minMajorSupportedVersion), VersionName(maxMajorSupportedVersion))
	}
	if major == minMajorSupportedVersion {
		return V1_1, nil
	}
	return major, nil
}
