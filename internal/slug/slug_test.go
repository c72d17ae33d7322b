package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Red Shoes", "red-shoes"},
		{"  Trimmed  ", "trimmed"},
		{"Café & Bar!", "caf-bar"},
		{"UPPER_case--42", "upper-case-42"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.name), "%q", tc.name)
	}
}
