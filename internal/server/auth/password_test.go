package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if strings.Contains(digest, "password1") {
		t.Fatal("digest must not contain the plaintext")
	}

	if !CheckPassword("password1", digest) {
		t.Fatal("correct password did not verify")
	}
	if CheckPassword("password2", digest) {
		t.Fatal("wrong password verified")
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ (embedded salt)")
	}
	if !CheckPassword("same-input", a) || !CheckPassword("same-input", b) {
		t.Fatal("both digests must verify the original password")
	}
}

func TestCheckPassword_GarbageDigest(t *testing.T) {
	t.Parallel()

	if CheckPassword("anything", "not-a-bcrypt-digest") {
		t.Fatal("garbage digest must not verify")
	}
}
