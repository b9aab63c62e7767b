//go:build unit

package entities_test

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

// genParts generates non-empty part lists with small values, so that equal
// prefixes and equal versions show up often.
func genParts() gopter.Gen {
	return gen.IntRange(1, 5).FlatMap(func(length interface{}) gopter.Gen {
		return gen.SliceOfN(length.(int), gen.UInt64Range(0, 3))
	}, reflect.TypeOf([]uint64{}))
}

func versionText(parts []uint64) string {
	segments := make([]string, len(parts))
	for i, part := range parts {
		segments[i] = strconv.FormatUint(part, 10)
	}
	return strings.Join(segments, ".")
}

func versionFrom(parts []uint64) entities.Version {
	return entities.MustParseVersion(versionText(parts))
}

func TestPropertyVersionRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("String() then ParseVersion() returns an equal version", prop.ForAll(
		func(parts []uint64) bool {
			original := versionFrom(parts)
			parsed, err := entities.ParseVersion(original.String())
			return err == nil && parsed.Equal(original) && parsed.String() == versionText(parts)
		},
		genParts(),
	))

	properties.Property("leading zeros parse to the same version", prop.ForAll(
		func(parts []uint64) bool {
			padded := make([]string, len(parts))
			for i, part := range parts {
				padded[i] = "00" + strconv.FormatUint(part, 10)
			}
			parsed, err := entities.ParseVersion(strings.Join(padded, "."))
			return err == nil && parsed.Equal(versionFrom(parts))
		},
		genParts(),
	))

	properties.TestingRun(t)
}

func TestPropertyVersionOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("Compare is reflexive", prop.ForAll(
		func(parts []uint64) bool {
			v := versionFrom(parts)
			return v.Compare(v) == 0
		},
		genParts(),
	))

	properties.Property("Compare is antisymmetric", prop.ForAll(
		func(a, b []uint64) bool {
			va, vb := versionFrom(a), versionFrom(b)
			return va.Compare(vb) == -vb.Compare(va)
		},
		genParts(), genParts(),
	))

	properties.Property("Compare is transitive", prop.ForAll(
		func(a, b, c []uint64) bool {
			va, vb, vc := versionFrom(a), versionFrom(b), versionFrom(c)
			if va.Compare(vb) <= 0 && vb.Compare(vc) <= 0 {
				return va.Compare(vc) <= 0
			}
			return true
		},
		genParts(), genParts(), genParts(),
	))

	properties.Property("equal versions have equal text", prop.ForAll(
		func(a, b []uint64) bool {
			va, vb := versionFrom(a), versionFrom(b)
			return va.Equal(vb) == (va.String() == vb.String())
		},
		genParts(), genParts(),
	))

	properties.Property("appending a part yields a greater version", prop.ForAll(
		func(parts []uint64, extra uint64) bool {
			longer := append(append([]uint64(nil), parts...), extra)
			return versionFrom(parts).Less(versionFrom(longer))
		},
		genParts(), gen.UInt64Range(0, 3),
	))

	properties.TestingRun(t)
}
