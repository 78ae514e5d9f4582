package youdao

import (
	"strconv"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty", "", ""},
		{"Short", "hello", "hello"},
		{"Exactly20", "abcdefghijklmnopqrst", "abcdefghijklmnopqrst"},
		{"21", "abcdefghijklmnopqrstu", "abcdefghij21lmnopqrstu"},
		{"Alphabet", "abcdefghijklmnopqrstuvwxyz", "abcdefghij26qrstuvwxyz"},
		{"Multibyte", strings.Repeat("文", 25), strings.Repeat("文", 10) + "25" + strings.Repeat("文", 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input); got != tt.want {
				t.Errorf("Truncate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateLength(t *testing.T) {
	for _, n := range []int{0, 1, 20, 21, 99, 100, 5000, 123456} {
		input := strings.Repeat("x", n)
		got := Truncate(input)
		if n <= 20 {
			if got != input {
				t.Errorf("n=%d: expected identity", n)
			}
			continue
		}
		want := 20 + len(strconv.Itoa(n))
		if len(got) != want {
			t.Errorf("n=%d: len(Truncate) = %d, want %d", n, len(got), want)
		}
	}
}

func TestSignVectors(t *testing.T) {
	tests := []struct {
		name                                 string
		input, appKey, salt, curtime, secret string
		want                                 string
	}{
		{
			name: "Short", input: "hello", appKey: "key", salt: "salt", curtime: "1700000000", secret: "secret",
			want: "5bb658e82f4a41cd89ee7e07bcf9436cbb42d5020e1a7272513a76d4b66f6dd5",
		},
		{
			name: "Truncated", input: "abcdefghijklmnopqrstuvwxyz", appKey: "key", salt: "salt", curtime: "1700000000", secret: "secret",
			want: "dccfed5131a77d9a006ec8d082ecd8ca370f5f736be7c025914b60e34cbf2082",
		},
		{
			name: "AllEmpty",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sign(tt.input, tt.appKey, tt.salt, tt.curtime, tt.secret)
			if got != tt.want {
				t.Errorf("Sign() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSignChangesWithEveryField(t *testing.T) {
	base := Sign("hello", "key", "salt", "1700000000", "secret")
	if again := Sign("hello", "key", "salt", "1700000000", "secret"); again != base {
		t.Fatalf("Sign is not deterministic: %s != %s", again, base)
	}

	variants := map[string]string{
		"input":   Sign("hellO", "key", "salt", "1700000000", "secret"),
		"appKey":  Sign("hello", "kez", "salt", "1700000000", "secret"),
		"salt":    Sign("hello", "key", "salu", "1700000000", "secret"),
		"curtime": Sign("hello", "key", "salt", "1700000001", "secret"),
		"secret":  Sign("hello", "key", "salt", "1700000000", "secreT"),
	}
	for field, got := range variants {
		if got == base {
			t.Errorf("changing %s did not change the signature", field)
		}
	}
}
