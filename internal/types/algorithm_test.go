// ABOUTME: Tests for the hash algorithm registry
// ABOUTME: Covers name resolution, digest lengths, hex digests and hash validation

package types_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

func TestAlgorithm_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		alg  types.Algorithm
		want string
	}{
		{name: "MD5", alg: types.AlgorithmMD5, want: "md5"},
		{name: "SHA1", alg: types.AlgorithmSHA1, want: "sha1"},
		{name: "SHA256", alg: types.AlgorithmSHA256, want: "sha256"},
		{name: "SHA512", alg: types.AlgorithmSHA512, want: "sha512"},
		{name: "Unknown", alg: types.AlgorithmUnknown, want: "unknown"},
		{name: "Out of range", alg: types.Algorithm(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.alg.String(); got != tt.want {
				t.Errorf("Algorithm.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   types.Algorithm
		wantOK bool
	}{
		{input: "md5", want: types.AlgorithmMD5, wantOK: true},
		{input: "SHA1", want: types.AlgorithmSHA1, wantOK: true},
		{input: "Sha256", want: types.AlgorithmSHA256, wantOK: true},
		{input: " sha512 ", want: types.AlgorithmSHA512, wantOK: true},
		{input: "sha", wantOK: false},
		{input: "sha2", wantOK: false},
		{input: "sha-256", wantOK: false},
		{input: "md4", wantOK: false},
		{input: "", wantOK: false},
		{input: "unknown", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := types.ResolveAlgorithm(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ResolveAlgorithm(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !tt.wantOK {
				if got != types.AlgorithmUnknown {
					t.Errorf("ResolveAlgorithm(%q) = %v, want unknown", tt.input, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ResolveAlgorithm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAlgorithm_Error(t *testing.T) {
	t.Parallel()

	_, err := types.ParseAlgorithm("whirlpool")
	if !errors.Is(err, types.ErrUnsupportedAlgorithm) {
		t.Fatalf("ParseAlgorithm() error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestExpectedLength(t *testing.T) {
	t.Parallel()

	want := map[types.Algorithm]int{
		types.AlgorithmMD5:    32,
		types.AlgorithmSHA1:   40,
		types.AlgorithmSHA256: 64,
		types.AlgorithmSHA512: 128,
	}

	for _, alg := range types.SupportedAlgorithms() {
		if got := types.ExpectedLength(alg); got != want[alg] {
			t.Errorf("ExpectedLength(%v) = %d, want %d", alg, got, want[alg])
		}
		if got := len(types.DigestHex(alg, []byte("x"))); got != want[alg] {
			t.Errorf("len(DigestHex(%v)) = %d, want %d", alg, got, want[alg])
		}
	}

	if got := len(types.SupportedAlgorithms()); got != len(want) {
		t.Errorf("SupportedAlgorithms() returned %d algorithms, want %d", got, len(want))
	}
	if got := types.ExpectedLength(types.AlgorithmUnknown); got != 0 {
		t.Errorf("ExpectedLength(unknown) = %d, want 0", got)
	}
}

func TestDigestHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		alg   types.Algorithm
		input string
		want  string
	}{
		{name: "MD5 hello", alg: types.AlgorithmMD5, input: "hello", want: "5d41402abc4b2a76b9719d911017c592"},
		{name: "MD5 password", alg: types.AlgorithmMD5, input: "password", want: "5f4dcc3b5aa765d61d8327deb882cf99"},
		{name: "SHA1 hello", alg: types.AlgorithmSHA1, input: "hello", want: "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{name: "SHA256 hello", alg: types.AlgorithmSHA256, input: "hello", want: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{name: "SHA256 password", alg: types.AlgorithmSHA256, input: "password", want: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
		{
			name:  "SHA512 empty",
			alg:   types.AlgorithmSHA512,
			input: "",
			want:  "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		},
		{name: "Unknown", alg: types.AlgorithmUnknown, input: "hello", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := types.DigestHex(tt.alg, []byte(tt.input))
			if got != tt.want {
				t.Errorf("DigestHex(%v, %q) = %v, want %v", tt.alg, tt.input, got, tt.want)
			}
			if got != strings.ToLower(got) {
				t.Errorf("DigestHex() = %v, want lowercase", got)
			}
		})
	}
}

func TestParseTargetHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		alg       types.Algorithm
		input     string
		wantValue string
		wantErr   error
	}{
		{
			name:      "valid MD5 lowercase",
			alg:       types.AlgorithmMD5,
			input:     "5f4dcc3b5aa765d61d8327deb882cf99",
			wantValue: "5f4dcc3b5aa765d61d8327deb882cf99",
		},
		{
			name:      "valid MD5 uppercase normalized",
			alg:       types.AlgorithmMD5,
			input:     "5F4DCC3B5AA765D61D8327DEB882CF99",
			wantValue: "5f4dcc3b5aa765d61d8327deb882cf99",
		},
		{
			name:    "too short",
			alg:     types.AlgorithmSHA256,
			input:   "zz",
			wantErr: types.ErrMalformedHash,
		},
		{
			name:    "right length wrong charset",
			alg:     types.AlgorithmMD5,
			input:   "5f4dcc3b5aa765d61d8327deb882cf9g",
			wantErr: types.ErrMalformedHash,
		},
		{
			name:    "MD5 length for SHA1",
			alg:     types.AlgorithmSHA1,
			input:   "5f4dcc3b5aa765d61d8327deb882cf99",
			wantErr: types.ErrMalformedHash,
		},
		{
			name:    "surrounding whitespace rejected",
			alg:     types.AlgorithmMD5,
			input:   " 5f4dcc3b5aa765d61d8327deb882cf9",
			wantErr: types.ErrMalformedHash,
		},
		{
			name:    "unknown algorithm",
			alg:     types.AlgorithmUnknown,
			input:   "5f4dcc3b5aa765d61d8327deb882cf99",
			wantErr: types.ErrUnsupportedAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := types.ParseTargetHash(tt.alg, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseTargetHash() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTargetHash() unexpected error: %v", err)
			}
			if got.Value != tt.wantValue {
				t.Errorf("ParseTargetHash() value = %v, want %v", got.Value, tt.wantValue)
			}
			if !got.IsValid() {
				t.Error("IsValid() = false, want true")
			}
		})
	}
}

func TestTargetHash_KeyAndMatches(t *testing.T) {
	t.Parallel()

	target, err := types.ParseTargetHash(types.AlgorithmMD5, "5D41402ABC4B2A76B9719D911017C592")
	if err != nil {
		t.Fatalf("ParseTargetHash() error: %v", err)
	}

	if got, want := target.Key(), "md5:5d41402abc4b2a76b9719d911017c592"; got != want {
		t.Errorf("Key() = %v, want %v", got, want)
	}
	if !target.Matches([]byte("hello")) {
		t.Error("Matches(hello) = false, want true")
	}
	if target.Matches([]byte("Hello")) {
		t.Error("Matches(Hello) = true, want false")
	}
}

func TestAlgorithm_TextRoundTrip(t *testing.T) {
	t.Parallel()

	var alg types.Algorithm
	if err := alg.UnmarshalText([]byte("SHA512")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if alg != types.AlgorithmSHA512 {
		t.Errorf("UnmarshalText() = %v, want sha512", alg)
	}
	if err := alg.UnmarshalText([]byte("crc32")); err == nil {
		t.Error("UnmarshalText(crc32) expected error, got nil")
	}
}
