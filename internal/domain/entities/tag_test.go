//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "should strip refs/tags/ and v prefixes", raw: "refs/tags/v2.0", expected: "2.0", ok: true},
		{name: "should accept a tag without v prefix", raw: "refs/tags/1.4.2", expected: "1.4.2", ok: true},
		{name: "should accept a bare tag name", raw: "v3", expected: "3", ok: true},
		{name: "should accept a bare version", raw: "1.1", expected: "1.1", ok: true},
		{name: "should drop peeled tag entries", raw: "refs/tags/v2.0^{}", ok: false},
		{name: "should drop non-numeric tags", raw: "refs/tags/latest", ok: false},
		{name: "should drop pre-release tags", raw: "refs/tags/v1.0-rc1", ok: false},
		{name: "should drop branches", raw: "refs/heads/main", ok: false},
		{name: "should drop HEAD", raw: "HEAD", ok: false},
		{name: "should strip a single v only", raw: "refs/tags/vv1.0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			version, ok := entities.ParseTag(tt.raw)

			// then
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, version.String())
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	t.Run("should keep parsable tags in listing order without duplicates", func(t *testing.T) {
		t.Parallel()

		// given
		raw := []string{
			"HEAD",
			"refs/heads/main",
			"refs/tags/v1.0",
			"refs/tags/v1.0^{}",
			"refs/tags/1.0",
			"refs/tags/latest",
			"refs/tags/v1.1",
		}

		// when
		versions := entities.ParseTags(raw)

		// then
		texts := make([]string, 0, len(versions))
		for _, version := range versions {
			texts = append(texts, version.String())
		}
		assert.Equal(t, []string{"1.0", "1.1"}, texts)
	})

	t.Run("should return an empty slice when nothing parses", func(t *testing.T) {
		t.Parallel()

		// when
		versions := entities.ParseTags([]string{"latest", "nightly"})

		// then
		assert.Empty(t, versions)
	})
}
