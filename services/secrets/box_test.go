package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core"
)

func TestBox_SealOpen(t *testing.T) {
	box := New(&core.Config{SecretKey: "s3cr3t"})

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "empty", plaintext: ""},
		{name: "api key", plaintext: "sk_live_51HxYzAbCdEf"},
		{name: "unicode", plaintext: "clé-секрет-鍵"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := box.Seal(tt.plaintext)
			require.NoError(t, err)
			if tt.plaintext != "" {
				assert.False(t, strings.Contains(sealed, tt.plaintext))
			}

			again, err := box.Seal(tt.plaintext)
			require.NoError(t, err)
			assert.NotEqual(t, sealed, again, "nonce must differ between seals")

			opened, err := box.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, opened)
		})
	}
}

func TestBox_OpenRejects(t *testing.T) {
	box := New(&core.Config{SecretKey: "s3cr3t"})
	other := New(&core.Config{SecretKey: "another"})

	sealed, err := box.Seal("sk_live_51HxYzAbCdEf")
	require.NoError(t, err)

	tests := []struct {
		name   string
		box    *Box
		sealed string
	}{
		{name: "wrong key", box: other, sealed: sealed},
		{name: "not base64", box: box, sealed: "%%%"},
		{name: "too short", box: box, sealed: "AAAA"},
		{name: "tampered", box: box, sealed: sealed[:len(sealed)-4] + "AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.box.Open(tt.sealed); err == nil {
				t.Errorf("box.Open() error = nil, want error")
			}
		})
	}
}
