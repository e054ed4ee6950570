package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/Davincible/timescipher/pkg/secure"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 32
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100000
)

type SecureStorage struct {
	filepath string
}

type EncryptedData struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewSecureStorage(filepath string) *SecureStorage {
	return &SecureStorage{
		filepath: filepath,
	}
}

func (s *SecureStorage) Path() string {
	return s.filepath
}

func (s *SecureStorage) Save(data []byte, password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	salt, err := secure.SecureRandom(SaltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return err
	}

	nonce, err := secure.SecureRandom(NonceSize)
	if err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	encrypted := EncryptedData{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, data, nil),
	}

	jsonData, err := json.Marshal(encrypted)
	if err != nil {
		return fmt.Errorf("failed to marshal encrypted data: %w", err)
	}

	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.filepath, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *SecureStorage) Load(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	jsonData, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var encrypted EncryptedData
	if err := json.Unmarshal(jsonData, &encrypted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encrypted data: %w", err)
	}

	key := pbkdf2.Key(password, encrypted.Salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(encrypted.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(encrypted.Nonce))
	}

	plaintext, err := gcm.Open(nil, encrypted.Nonce, encrypted.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

func (s *SecureStorage) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

func (s *SecureStorage) Delete() error {
	if !s.Exists() {
		return nil
	}

	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return fmt.Errorf("failed to read file for secure deletion: %w", err)
	}

	if _, err := rand.Read(data); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	if err := os.WriteFile(s.filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	return os.Remove(s.filepath)
}

// AnswerKey is the sealed content of an answer-key file: the settings
// and the decoding table they produce.
type AnswerKey struct {
	GridSize int            `json:"grid_size"`
	Seed     int32          `json:"seed"`
	Created  time.Time      `json:"created"`
	Table    map[int]string `json:"table"`
	Note     string         `json:"note,omitempty"`
}

// NewAnswerKey captures the table of a cipher.
func NewAnswerKey(c *gridcipher.Cipher, note string) *AnswerKey {
	table := make(map[int]string, c.Table.Len())
	for product, letter := range c.Table {
		table[product] = string(letter)
	}

	return &AnswerKey{
		GridSize: c.GridSize,
		Seed:     c.Seed,
		Created:  time.Now().UTC(),
		Table:    table,
		Note:     note,
	}
}

// DecodingTable rebuilds the decoding table stored in the key.
func (k *AnswerKey) DecodingTable() (gridcipher.DecodingTable, error) {
	table := make(gridcipher.DecodingTable, len(k.Table))
	for product, letter := range k.Table {
		runes := []rune(letter)
		if len(runes) != 1 || !gridcipher.IsLetter(runes[0]) {
			return nil, fmt.Errorf("product %d maps to invalid letter %q", product, letter)
		}
		table[product] = runes[0]
	}
	return table, nil
}

// Verify checks that the stored table matches the one regenerated from
// the stored settings. It returns the mismatching products.
func (k *AnswerKey) Verify() []int {
	want := gridcipher.GenerateDecodingTable(k.GridSize, k.Seed)

	var mismatched []int
	for product, letter := range want {
		if k.Table[product] != string(letter) {
			mismatched = append(mismatched, product)
		}
	}
	for product := range k.Table {
		if _, ok := want[product]; !ok {
			mismatched = append(mismatched, product)
		}
	}
	sort.Ints(mismatched)
	return mismatched
}

type AnswerKeyStorage struct {
	storage *SecureStorage
}

func NewAnswerKeyStorage(filepath string) *AnswerKeyStorage {
	return &AnswerKeyStorage{
		storage: NewSecureStorage(filepath),
	}
}

func (s *AnswerKeyStorage) SaveKey(key *AnswerKey, password []byte) error {
	data, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to marshal answer key: %w", err)
	}
	defer secure.Zero(data)

	return s.storage.Save(data, password)
}

func (s *AnswerKeyStorage) LoadKey(password []byte) (*AnswerKey, error) {
	data, err := s.storage.Load(password)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(data)

	var key AnswerKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer key: %w", err)
	}

	return &key, nil
}

func (s *AnswerKeyStorage) Path() string {
	return s.storage.Path()
}

func (s *AnswerKeyStorage) Exists() bool {
	return s.storage.Exists()
}

func (s *AnswerKeyStorage) Delete() error {
	return s.storage.Delete()
}
