package phone

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"+79991234567", true},
		{"89991234567", true},
		{"+78005553535", true},
		{"80000000000", true},

		{"", false},
		{"79991234567", false},    // bare country code without prefix
		{"+89991234567", false},   // plus only allowed with 7
		{"+7999123456", false},    // nine digits
		{"+799912345678", false},  // eleven digits
		{"8999123456", false},     // nine digits after 8
		{"899912345678", false},   // eleven digits after 8
		{"+7 999 123 45 67", false},
		{"8(999)1234567", false},
		{"8-999-123-45-67", false},
		{"+7999123456a", false},
		{" +79991234567", false},  // callers trim before validating
		{"+79991234567 ", false},
		{"tel:+79991234567", false},
	}
	for _, tc := range cases {
		if got := Validate(tc.in); got != tc.want {
			t.Fatalf("Validate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
