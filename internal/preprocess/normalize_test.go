package preprocess

import (
	"regexp"
	"testing"
)

var normalizedPattern = regexp.MustCompile(`^[a-z ]*$`)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "punctuation and digits",
			input:  "Hello, World! 123",
			expect: "hello world ",
		},
		{
			name:   "empty",
			input:  "",
			expect: "",
		},
		{
			name:   "newlines are deleted",
			input:  "machine\nlearning",
			expect: "machinelearning",
		},
		{
			name:   "non ascii letters are dropped",
			input:  "Café Straße",
			expect: "caf strae",
		},
		{
			name:   "tabs are dropped",
			input:  "Go\tSQL",
			expect: "gosql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Senior Python Developer",
		"  mixed CASE words  ",
		"Node.js, C++ & C#\r\n2019-2024",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q != %q", input, twice, once)
		}
		if !normalizedPattern.MatchString(once) {
			t.Fatalf("unexpected characters in %q", once)
		}
	}
}
