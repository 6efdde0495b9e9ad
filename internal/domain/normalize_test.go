package domain

import "testing"

func TestNormalizeTagName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "tech", "tech"},
		{"mixed case", "Tech", "tech"},
		{"upper", "NEWS", "news"},
		{"trim", "  video  ", "video"},
		{"inner spaces", "machine   learning", "machine learning"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"unicode", "Музыка", "музыка"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTagName(tc.in); got != tc.want {
				t.Errorf("NormalizeTagName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
