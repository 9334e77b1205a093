package products

import "testing"

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{
			name:  "currency prefix and thousands separator",
			input: "KES 12,500.00",
			want:  12500.00,
			ok:    true,
		},
		{
			name:  "plain integer",
			input: "4500",
			want:  4500,
			ok:    true,
		},
		{
			name:  "decimal",
			input: "Ksh 1,299.50",
			want:  1299.50,
			ok:    true,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "no digits",
			input: "Call for price",
			ok:    false,
		},
		{
			name:  "multiple dots do not parse",
			input: "1.2.3",
			ok:    false,
		},
		{
			name:  "lone dot",
			input: "KES .",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanPrice(tt.input)
			if ok != tt.ok {
				t.Fatalf("CleanPrice(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("CleanPrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidImageURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"jpg", "https://x/a.jpg", true},
		{"jpeg", "https://cdn.example.com/images/photo.JPEG", true},
		{"png with query", "https://x/b.png?w=800", true},
		{"gif", "http://x/anim.gif", true},
		{"webp", "https://x/c.webp", true},
		{"not a url", "not a url", false},
		{"empty", "", false},
		{"missing scheme", "x/a.jpg", false},
		{"missing host", "file:///a.jpg", false},
		{"wrong extension", "https://x/page.html", false},
		{"no extension", "https://x/image", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidImageURL(tt.input); got != tt.want {
				t.Errorf("ValidImageURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
