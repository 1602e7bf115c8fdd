package service

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "  plain   text\n", want: "plain text"},
		{in: "<p>Hello <strong>world</strong></p>", want: "Hello world"},
		{in: "<ul><li>one</li><li>two</li></ul>", want: "one two"},
		{in: "fish &amp; chips", want: "fish & chips"},
		{in: "<style>p{}</style><p>kept</p>", want: "kept"},
		{in: "<br/>", want: ""},
	}
	for _, tc := range tests {
		if got := plainText(tc.in); got != tc.want {
			t.Fatalf("plainText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
