package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("produces unique url-safe tokens", func(t *testing.T) {
		a, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		b, err := GenerateToken(TokenSize256)
		require.NoError(t, err)

		require.NotEqual(t, a, b)
		require.Len(t, a, 43) // 32 bytes base64url, no padding
		require.NotContains(t, a, "=")
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)
		_, err = GenerateToken(-1)
		require.Error(t, err)
	})
}

func TestFingerprintAndVerify(t *testing.T) {
	t.Parallel()

	token := MustGenerateToken(TokenSize128)
	fp := FingerprintToken(token)

	require.Len(t, fp, 43)
	require.NotEqual(t, token, fp)
	require.True(t, VerifyToken(token, fp))
	require.False(t, VerifyToken(token+"x", fp))
	require.False(t, VerifyToken(token, FingerprintToken("other")))
}
