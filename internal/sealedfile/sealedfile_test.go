package sealedfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSignThenVerifySucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "circuit.txt")
	if err := os.WriteFile(path, []byte("5 2\nX  0\ncX  0  1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	pub, priv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if err := Sign(path, pub, priv); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify() = false, want true for an untampered file")
	}
}

func TestVerifyFailsAfterTamper(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "circuit.txt")
	if err := os.WriteFile(path, []byte("5 1\nX  0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	pub, priv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if err := Sign(path, pub, priv); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := os.WriteFile(path, []byte("5 1\ncX  0  1\n"), 0o644); err != nil {
		t.Fatalf("tamper WriteFile: %v", err)
	}

	ok, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("Verify() = true after tampering, want false")
	}
}
