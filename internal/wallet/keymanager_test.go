package wallet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// Well-known throwaway test key, never used on a real network.
const testKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	blob, err := EncryptKey(testKeyHex, "hunter2")
	require.NoError(t, err)

	got, err := DecryptKey(blob, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, testKeyHex, got)
}

func TestDecryptWrongPassword(t *testing.T) {
	blob, err := EncryptKey(testKeyHex, "hunter2")
	require.NoError(t, err)

	_, err = DecryptKey(blob, "wrong")
	assert.Error(t, err)
}

func TestEncryptKeyValidation(t *testing.T) {
	_, err := EncryptKey(testKeyHex, "")
	assert.Error(t, err)

	_, err = EncryptKey("not-hex", "hunter2")
	assert.Error(t, err)

	_, err = EncryptKey("abcd", "hunter2")
	assert.Error(t, err) // too short
}

func TestDecryptKeyFile(t *testing.T) {
	blob, err := EncryptKey("0x"+testKeyHex, "hunter2")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, blob, 0o600))

	got, err := DecryptKeyFile(path, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, testKeyHex, got)
}

func TestProviderFromEncryptedFile(t *testing.T) {
	blob, err := EncryptKey(testKeyHex, "hunter2")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, blob, 0o600))

	p, err := New(Config{
		EncryptedKeyPath: path,
		KeyPassword:      "hunter2",
		Approve:          true,
	})
	require.NoError(t, err)

	addr, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)

	// Same key via the direct path yields the same address.
	direct, err := New(Config{PrivateKey: testKeyHex, Approve: true})
	require.NoError(t, err)
	directAddr, err := direct.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, directAddr, addr)
}

func TestNewStatic(t *testing.T) {
	p, err := NewStatic("0x71C7656EC7ab88b098defB751B7401B5f6d8976F")
	require.NoError(t, err)

	addr, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x71C7656EC7ab88b098defB751B7401B5f6d8976F", addr)

	_, err = NewStatic("not-an-address")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
