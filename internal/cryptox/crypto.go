// Package cryptox holds the at-rest encryption used for locally persisted
// session data: an argon2id key derivation and AES-GCM sealing of JSON values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys produced by DeriveKey (AES-256).
const KeySize = 32

// SaltSize is the recommended salt length for DeriveKey.
const SaltSize = 16

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches secret into a KeySize AES key with argon2id.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// NewSalt returns a random SaltSize salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// SealJSON serializes v to JSON and encrypts it with AES-GCM.
//
// A fresh nonce is generated per call and prepended to the ciphertext, so
// the returned blob is self-contained and can be passed to OpenJSON as is.
func SealJSON(v any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(plaintext)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenJSON reverses SealJSON and unmarshals the plaintext into v.
// A wrong key or a tampered blob fails authentication and returns an error.
func OpenJSON(blob, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}
	ns := aesgcm.NonceSize()
	if len(blob) < ns {
		return ErrCiphertextTooShort
	}

	plaintext, err := aesgcm.Open(nil, blob[:ns], blob[ns:], nil)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
