package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "sealed.json")
	s := NewSecureStorage(path)
	assert.False(t, s.Exists())

	require.NoError(t, s.Save([]byte("payload"), []byte("passphrase")))
	assert.True(t, s.Exists())

	data, err := s.Load([]byte("passphrase"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	_, err = s.Load([]byte("wrong passphrase"))
	assert.Error(t, err)

	require.NoError(t, s.Delete())
	assert.False(t, s.Exists())
	assert.NoError(t, s.Delete())
}

func TestSecureStorageEmptyPassword(t *testing.T) {
	s := NewSecureStorage(filepath.Join(t.TempDir(), "sealed.json"))
	assert.Error(t, s.Save([]byte("payload"), nil))

	_, err := s.Load(nil)
	assert.Error(t, err)
}

func TestSecureStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sealed.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := NewSecureStorage(path).Load([]byte("passphrase"))
	assert.Error(t, err)
}

func TestAnswerKeyStorage(t *testing.T) {
	c := gridcipher.NewCipher(10, 2024)
	key := NewAnswerKey(c, "class 4b")
	assert.Empty(t, key.Verify())

	s := NewAnswerKeyStorage(filepath.Join(t.TempDir(), "answer-key.json"))
	require.NoError(t, s.SaveKey(key, []byte("staff-room")))

	loaded, err := s.LoadKey([]byte("staff-room"))
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.GridSize)
	assert.Equal(t, int32(2024), loaded.Seed)
	assert.Equal(t, "class 4b", loaded.Note)
	assert.Empty(t, loaded.Verify())

	table, err := loaded.DecodingTable()
	require.NoError(t, err)
	assert.Equal(t, c.Table, table)
}

func TestAnswerKeyVerifyDetectsTampering(t *testing.T) {
	key := NewAnswerKey(gridcipher.NewCipher(8, 1), "")
	key.Table[8] = "Q"
	key.Table[999] = "A"

	assert.Equal(t, []int{8, 999}, key.Verify())
}

func TestAnswerKeyInvalidLetter(t *testing.T) {
	key := &AnswerKey{GridSize: 8, Seed: 1, Table: map[int]string{1: "ab"}}
	_, err := key.DecodingTable()
	assert.Error(t, err)

	key.Table[1] = "é"
	_, err = key.DecodingTable()
	assert.Error(t, err)
}
