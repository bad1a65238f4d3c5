// Package sealedfile adds optional ML-DSA-87 detached-signature
// integrity to an output circuit file: a pure enrichment over the
// canonical serialization format of spec.md §6, opt-in via cmd/revsynth's
// --sign/--verify-sig flags, never touched by the search itself.
package sealedfile

import (
	"encoding"
	"fmt"
	"os"

	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
)

const (
	sigSuffix = ".sig"
	pubSuffix = ".pub"
)

// GenerateKeyPair creates a fresh ML-DSA-87 keypair, one per signed run.
func GenerateKeyPair() (*mldsa87.PublicKey, *mldsa87.PrivateKey, error) {
	pub, priv, err := mldsa87.GenerateKey(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("sealedfile: key generation failed: %w", err)
	}
	return pub, priv, nil
}

// Sign writes a detached signature of path's current contents to
// path+".sig", and the public key to path+".pub" so a later, separate
// process can verify it.
func Sign(path string, pub *mldsa87.PublicKey, priv *mldsa87.PrivateKey) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("sealedfile: read %s: %w", path, err)
	}

	sig := make([]byte, mldsa87.SignatureSize)
	if err := mldsa87.SignTo(priv, data, nil, true, sig); err != nil {
		return fmt.Errorf("sealedfile: sign %s: %w", path, err)
	}
	if err := os.WriteFile(path+sigSuffix, sig, 0o644); err != nil {
		return fmt.Errorf("sealedfile: write %s: %w", path+sigSuffix, err)
	}

	pubBytes, err := marshalKey(pub)
	if err != nil {
		return fmt.Errorf("sealedfile: marshal public key: %w", err)
	}
	if err := os.WriteFile(path+pubSuffix, pubBytes, 0o644); err != nil {
		return fmt.Errorf("sealedfile: write %s: %w", path+pubSuffix, err)
	}
	return nil
}

// Verify reads path, path+".sig", and path+".pub" and reports whether
// the signature is valid over path's current contents.
func Verify(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("sealedfile: read %s: %w", path, err)
	}
	sig, err := os.ReadFile(path + sigSuffix)
	if err != nil {
		return false, fmt.Errorf("sealedfile: read %s: %w", path+sigSuffix, err)
	}
	pubBytes, err := os.ReadFile(path + pubSuffix)
	if err != nil {
		return false, fmt.Errorf("sealedfile: read %s: %w", path+pubSuffix, err)
	}

	pub := new(mldsa87.PublicKey)
	if err := unmarshalKey(pub, pubBytes); err != nil {
		return false, fmt.Errorf("sealedfile: unmarshal public key: %w", err)
	}
	return mldsa87.Verify(pub, data, nil, sig), nil
}

func marshalKey(m encoding.BinaryMarshaler) ([]byte, error) {
	return m.MarshalBinary()
}

func unmarshalKey(u encoding.BinaryUnmarshaler, data []byte) error {
	return u.UnmarshalBinary(data)
}
