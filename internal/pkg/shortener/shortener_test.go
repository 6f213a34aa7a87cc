package shortener

import (
	"strings"
	"testing"
)

func TestGenerateSecureSlug_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := GenerateSecureSlug(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
	if _, err := GenerateSecureSlug(-3); err == nil {
		t.Fatalf("expected error for negative length")
	}
}

func TestGenerateSecureSlug_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	slug, err := GenerateSecureSlug(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slug) != 10 {
		t.Fatalf("expected slug length 10, got %d", len(slug))
	}

	for i := 0; i < len(slug); i++ {
		if strings.IndexByte(alphabet, slug[i]) == -1 {
			t.Fatalf("slug contains invalid character %q", slug[i])
		}
	}
}

func TestGenerateSecureSlug_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		slug, err := GenerateSecureSlug(10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := seen[slug]; exists {
			t.Fatalf("duplicate slug generated in small batch: %s", slug)
		}
		seen[slug] = struct{}{}
	}
}

func TestEncodeID_KnownValues(t *testing.T) {
	t.Parallel()

	cases := map[uint]string{
		0:   "0",
		9:   "9",
		10:  "a",
		61:  "Z",
		62:  "10",
		124: "20",
	}
	for id, want := range cases {
		if got := EncodeID(id); got != want {
			t.Fatalf("EncodeID(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestEncodeID_DecodeID_RoundTrip(t *testing.T) {
	t.Parallel()

	ids := []uint{0, 1, 61, 62, 12345, 987654321}
	for _, id := range ids {
		encoded := EncodeID(id)
		if encoded == "" {
			t.Fatalf("EncodeID(%d) returned empty string", id)
		}
		if got := DecodeID(encoded); got != id {
			t.Fatalf("round trip failed for %d: encoded %q decoded to %d", id, encoded, got)
		}
	}
}

func TestDecodeID_SkipsFormatting(t *testing.T) {
	t.Parallel()

	if got, want := DecodeID("1-0"), DecodeID("10"); got != want {
		t.Fatalf("formatting characters should be skipped: got %d want %d", got, want)
	}
}
