package services

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
)

// LegacyCipher reproduces the broadcast encryption the web client expects:
// AES-256-CBC with the key-name bytes as the key (zero-padded or truncated
// to 32 bytes) and a constant all-zero IV, ciphertext base64-encoded. This
// is a preserved legacy behavior, not a security guarantee; the server only
// ever encrypts, never decrypts stored content.
type LegacyCipher struct{}

const legacyKeySize = 32

func legacyKey(keyName string) []byte {
	key := make([]byte, legacyKeySize)
	copy(key, keyName)
	return key
}

func (LegacyCipher) Encrypt(plaintext, keyName string) (string, error) {
	block, err := aes.NewCipher(legacyKey(keyName))
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt exists for parity with the client-side behavior and for round-trip
// verification; the serving paths never call it.
func (LegacyCipher) Decrypt(ciphertext, keyName string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", errors.New("ciphertext is not block-aligned")
	}

	block, err := aes.NewCipher(legacyKey(keyName))
	if err != nil {
		return "", err
	}

	out := make([]byte, len(raw))
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, raw)

	unpadded, err := pkcs7Unpad(out)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty plaintext")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	return data[:len(data)-padding], nil
}
