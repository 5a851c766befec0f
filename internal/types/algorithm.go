// ABOUTME: Hash algorithm registry for MD5, SHA1, SHA256 and SHA512
// ABOUTME: Resolves names, computes hex digests, and validates target hashes

package types

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm int

const (
	// AlgorithmUnknown represents an unknown or unsupported algorithm.
	AlgorithmUnknown Algorithm = iota
	// AlgorithmMD5 represents MD5 (32 hex characters).
	AlgorithmMD5
	// AlgorithmSHA1 represents SHA-1 (40 hex characters).
	AlgorithmSHA1
	// AlgorithmSHA256 represents SHA-256 (64 hex characters).
	AlgorithmSHA256
	// AlgorithmSHA512 represents SHA-512 (128 hex characters).
	AlgorithmSHA512
)

// DefaultAlgorithm is used when the caller does not name one.
const DefaultAlgorithm = AlgorithmSHA256

// Hex digest length constants.
const (
	MD5Length    = 2 * md5.Size
	SHA1Length   = 2 * sha1.Size
	SHA256Length = 2 * sha256.Size
	SHA512Length = 2 * sha512.Size
)

var (
	// ErrUnsupportedAlgorithm is returned for names outside the registry.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrMalformedHash is returned when a hash has the wrong length or non-hex characters.
	ErrMalformedHash = errors.New("malformed hash")
)

type algorithmEntry struct {
	name   string
	size   int
	digest func([]byte) []byte
}

// registry is indexed by Algorithm and never modified after init.
var registry = [...]algorithmEntry{
	AlgorithmUnknown: {name: "unknown"},
	AlgorithmMD5: {name: "md5", size: md5.Size, digest: func(b []byte) []byte {
		sum := md5.Sum(b)
		return sum[:]
	}},
	AlgorithmSHA1: {name: "sha1", size: sha1.Size, digest: func(b []byte) []byte {
		sum := sha1.Sum(b)
		return sum[:]
	}},
	AlgorithmSHA256: {name: "sha256", size: sha256.Size, digest: func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	}},
	AlgorithmSHA512: {name: "sha512", size: sha512.Size, digest: func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	}},
}

func (a Algorithm) entry() algorithmEntry {
	if a <= AlgorithmUnknown || int(a) >= len(registry) {
		return registry[AlgorithmUnknown]
	}
	return registry[a]
}

// String returns the lowercase name of the algorithm.
func (a Algorithm) String() string {
	return a.entry().name
}

// IsValid returns true for a supported algorithm.
func (a Algorithm) IsValid() bool {
	return a.entry().digest != nil
}

// DigestSize returns the digest length in bytes, or 0 if unknown.
func (a Algorithm) DigestSize() int {
	return a.entry().size
}

// ExpectedLength returns the hex digest length, or 0 if unknown.
func (a Algorithm) ExpectedLength() int {
	return 2 * a.entry().size
}

// Digest computes the raw digest of data. Returns nil for an unknown algorithm.
func (a Algorithm) Digest(data []byte) []byte {
	fn := a.entry().digest
	if fn == nil {
		return nil
	}
	return fn(data)
}

// MarshalText encodes the algorithm as its name.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an algorithm name.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// ResolveAlgorithm looks up an algorithm by name, ignoring case and
// surrounding whitespace. Only exact names match.
func ResolveAlgorithm(name string) (Algorithm, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := AlgorithmMD5; int(i) < len(registry); i++ {
		if registry[i].name == name {
			return i, true
		}
	}
	return AlgorithmUnknown, false
}

// ParseAlgorithm is ResolveAlgorithm with an error for unknown names.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg, ok := ResolveAlgorithm(name)
	if !ok {
		return AlgorithmUnknown, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// SupportedAlgorithms returns all supported algorithms in registry order.
func SupportedAlgorithms() []Algorithm {
	algs := make([]Algorithm, 0, len(registry)-1)
	for i := AlgorithmMD5; int(i) < len(registry); i++ {
		algs = append(algs, i)
	}
	return algs
}

// ExpectedLength returns the hex digest length for alg.
func ExpectedLength(alg Algorithm) int {
	return alg.ExpectedLength()
}

// DigestHex computes the digest of data and renders it as lowercase hex.
func DigestHex(alg Algorithm, data []byte) string {
	sum := alg.Digest(data)
	if sum == nil {
		return ""
	}
	return hex.EncodeToString(sum)
}

// TargetHash is a validated hex digest paired with its algorithm.
type TargetHash struct {
	Algorithm Algorithm `json:"algorithm"`
	Value     string    `json:"value"`
}

// ParseTargetHash validates s against alg and returns it normalized to lowercase.
func ParseTargetHash(alg Algorithm, s string) (TargetHash, error) {
	if err := ValidateHash(alg, s); err != nil {
		return TargetHash{}, err
	}
	return TargetHash{Algorithm: alg, Value: strings.ToLower(s)}, nil
}

// ValidateHash checks that s has the hex length alg expects and contains only
// hex digits in either case.
func ValidateHash(alg Algorithm, s string) error {
	if !alg.IsValid() {
		return ErrUnsupportedAlgorithm
	}

	if len(s) != alg.ExpectedLength() {
		return fmt.Errorf("%w: length %d, %s expects %d", ErrMalformedHash, len(s), alg, alg.ExpectedLength())
	}

	for i := 0; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return fmt.Errorf("%w: invalid hex character at position %d", ErrMalformedHash, i)
		}
	}

	return nil
}

// Key returns the storage key for this hash (e.g., "sha256:abc123").
func (h TargetHash) Key() string {
	return h.Algorithm.String() + ":" + h.Value
}

// IsValid returns true if the hash has a supported algorithm and well-formed value.
func (h TargetHash) IsValid() bool {
	return ValidateHash(h.Algorithm, h.Value) == nil
}

// Matches reports whether candidate hashes to this target.
func (h TargetHash) Matches(candidate []byte) bool {
	return DigestHex(h.Algorithm, candidate) == h.Value
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
