package str

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Acme Inc", "acme-inc"},
		{"My new nice name", "my-new-nice-name"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Smith & Sons, Ltd.", "smith-sons-ltd"},
		{"Crème Brûlée", "creme-brulee"},
		{"Straße", "strasse"},
		{"snake_case_name", "snake-case-name"},
		{"multi---dash  space", "multi-dash-space"},
		{"Sales@Home", "sales-at-home"},
		{"v2.0 Release", "v20-release"},
		{"--", ""},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slug(tc.in))
		})
	}
}

func TestSlugIsIdempotent(t *testing.T) {
	for _, in := range []string{"Acme Inc", "Crème Brûlée", "Hello, World!"} {
		once := Slug(in)
		assert.Equal(t, once, Slug(once))
	}
}
