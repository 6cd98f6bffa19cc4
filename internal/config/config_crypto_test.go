package config_test

import (
	"testing"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		t.Setenv("CRYPTO_KEY", "chave_curta")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("InitCrypto deveria ter entrado em pânico com chave curta, mas não entrou.")
			}
		}()

		config.InitCrypto()
	})

	t.Run("ValidKey", func(t *testing.T) {
		t.Setenv("CRYPTO_KEY", testKey)

		config.InitCrypto()

		if !config.CryptoEnabled() {
			t.Errorf("CryptoEnabled deveria ser true após InitCrypto com chave válida")
		}
	})
}

func TestEncryptDecrypt(t *testing.T) {
	t.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := `{"goals":[],"streak":0}`

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt falhou com erro: %v", err)
		}

		decryptedtext, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt falhou com erro: %v", err)
		}

		if decryptedtext != plaintext {
			t.Errorf("O texto descriptografado ('%s') não corresponde ao original ('%s')",
				decryptedtext, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("A criptografia não está sendo aleatória (nonce). As cifras deveriam ser diferentes.")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt falhou com erro: %v", err)
		}
		decryptedtext, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt falhou com erro: %v", err)
		}
		if decryptedtext != "" {
			t.Errorf("O texto descriptografado vazio está incorreto: '%s'", decryptedtext)
		}
	})

	t.Run("TruncatedCiphertext", func(t *testing.T) {
		if _, err := config.Decrypt("AAAA"); err == nil {
			t.Errorf("Decrypt deveria falhar com cifra truncada")
		}
	})
}
