package slug

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Multi   Space ", "multi-space"},
		{"Already-A-Slug", "already-a-slug"},
		{"2024 Year In Review", "2024-year-in-review"},
		{"---", ""},
		{"", ""},
		{"Crème Brûlée & Friends", "cr-me-br-l-e-friends"},
	}

	for _, tc := range cases {
		if got := Make(tc.title); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestProperty_MakeIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("slugging a slug changes nothing", prop.ForAll(
		func(title string) bool {
			once := Make(title)
			return Make(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_MakeProducesURLSafeOutput(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("output contains only [a-z0-9-] with no edge hyphens", prop.ForAll(
		func(title string) bool {
			s := Make(title)
			if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
				return false
			}
			for _, r := range s {
				ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
				if !ok {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
