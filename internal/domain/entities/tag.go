package entities

import "strings"

const (
	tagRefPrefix    = "refs/tags/"
	peeledTagSuffix = "^{}"
)

// ParseTag turns a tag listing entry such as "refs/tags/v1.2" into a Version.
//
// The "refs/tags/" prefix and a single leading "v" are stripped. Peeled
// entries ("refs/tags/v1.2^{}") and names that are not dotted numeric
// versions ("latest", "v1.2-rc1") are rejected with false.
func ParseTag(raw string) (Version, bool) {
	name := strings.TrimPrefix(raw, tagRefPrefix)
	if strings.HasSuffix(name, peeledTagSuffix) {
		return Version{}, false
	}
	name = strings.TrimPrefix(name, "v")

	version, err := ParseVersion(name)
	if err != nil {
		return Version{}, false
	}
	return version, true
}

// ParseTags applies ParseTag to every entry, keeping the versions that parse.
// The result keeps the listing order and has no duplicates.
func ParseTags(raw []string) []Version {
	seen := make(map[string]struct{}, len(raw))
	versions := make([]Version, 0, len(raw))
	for _, entry := range raw {
		version, ok := ParseTag(entry)
		if !ok {
			continue
		}
		key := version.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		versions = append(versions, version)
	}
	return versions
}
