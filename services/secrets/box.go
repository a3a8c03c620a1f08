package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/trezcool/coachdesk/core"
)

const (
	keySalt   = "coachdesk.paymethod.api_key"
	nonceSize = 24
)

var ErrUnsealable = errors.New("secret cannot be opened with this key")

// Box seals secrets with NaCl secretbox under a key derived from the app's secret key.
type Box struct {
	key [32]byte
}

var _ core.SecretBox = (*Box)(nil) // interface compliance check

func New(conf *core.Config) *Box {
	return &Box{key: sha256.Sum256([]byte(keySalt + conf.SecretKey))}
}

// Seal returns base64(nonce || box). Sealing the same plaintext twice gives different outputs.
func (b *Box) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", errors.Wrap(err, "generating nonce")
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Wrap(ErrUnsealable, "decoding secret")
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrUnsealable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrUnsealable
	}
	return string(plaintext), nil
}
