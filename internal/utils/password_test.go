package utils

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestGenerateTemporaryPassword(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	first, err := GenerateTemporaryPassword()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first) != 12 {
		t.Fatalf("length = %d, want 12", len(first))
	}
	for _, c := range first {
		if !strings.ContainsRune(alphabet, c) {
			t.Fatalf("unexpected character %q", c)
		}
	}

	second, err := GenerateTemporaryPassword()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Fatal("two generated passwords were identical")
	}
}
