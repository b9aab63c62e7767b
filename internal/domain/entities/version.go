package entities

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// versionPattern matches one or more dot-separated runs of ASCII digits.
var versionPattern = regexp.MustCompile(`^(\d+\.)*(\d+)$`)

// Version is a dotted numeric version such as "1", "1.2" or "1.0.2.1".
//
// Versions are ordered part by part. When one version is a prefix of the
// other, the shorter one is the lesser: "1" < "1.0". There is no implicit
// zero padding.
type Version struct {
	parts []uint64
}

// ParseVersion parses text into a Version. It fails with ErrInvalidVersion
// when text is not a dotted run of digits or when a part does not fit in
// 64 bits.
func ParseVersion(text string) (Version, error) {
	if !versionPattern.MatchString(text) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, text)
	}

	segments := strings.Split(text, ".")
	parts := make([]uint64, 0, len(segments))
	for _, segment := range segments {
		part, err := strconv.ParseUint(segment, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, text, err)
		}
		parts = append(parts, part)
	}

	return Version{parts: parts}, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
// It is meant for constants and tests.
func MustParseVersion(text string) Version {
	version, err := ParseVersion(text)
	if err != nil {
		panic(err)
	}
	return version
}

// Parts returns a copy of the numeric parts.
func (v Version) Parts() []uint64 {
	return slices.Clone(v.parts)
}

// IsZero reports whether v is the zero Version, which no parse produces.
func (v Version) IsZero() bool {
	return len(v.parts) == 0
}

// Compare returns -1, 0 or +1 depending on whether v is less than, equal to
// or greater than other.
func (v Version) Compare(other Version) int {
	return slices.Compare(v.parts, other.parts)
}

func (v Version) Equal(other Version) bool       { return v.Compare(other) == 0 }
func (v Version) Less(other Version) bool        { return v.Compare(other) < 0 }
func (v Version) GreaterThan(other Version) bool { return v.Compare(other) > 0 }

// String joins the parts with dots. Leading zeros of the parsed text are
// not preserved.
func (v Version) String() string {
	segments := make([]string, len(v.parts))
	for i, part := range v.parts {
		segments[i] = strconv.FormatUint(part, 10)
	}
	return strings.Join(segments, ".")
}

// CompareVersions is Version.Compare in function form, usable with the
// slices package.
func CompareVersions(a, b Version) int {
	return a.Compare(b)
}

// MaxVersion returns the greatest version of versions, or false when the
// slice is empty.
func MaxVersion(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	return slices.MaxFunc(versions, CompareVersions), true
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
