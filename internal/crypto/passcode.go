package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// RoomKeys производные ключи из кода доступа комнаты
type RoomKeys struct {
	AccessKey []byte // ключ для подтверждения доступа к комнате (32 bytes)
	CacheKey  []byte // ключ для шифрования локального кеша реплики (32 bytes)
}

// Параметры Argon2id для деривации ключей комнаты
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного ключа в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 32
)

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltBase64 генерирует криптографически случайную соль и возвращает ее в Base64
func GenerateSaltBase64() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveRoomKeys генерирует два независимых ключа из кода доступа комнаты:
// - AccessKey передается relay при входе и сверяется с хешем комнаты
// - CacheKey шифрует локальный кеш реплики, relay его никогда не видит
// Использует Argon2id с разными context strings для независимости ключей.
// roomName входит в материал деривации, чтобы одинаковые коды доступа
// разных комнат давали разные ключи
func DeriveRoomKeys(passcode, roomName string, salt []byte) (*RoomKeys, error) {
	if passcode == "" {
		return nil, fmt.Errorf("passcode cannot be empty")
	}
	if roomName == "" {
		return nil, fmt.Errorf("room name cannot be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	baseInput := []byte(passcode + roomName)

	accessContext := append(baseInput, []byte("access")...)
	accessKey := argon2.IDKey(accessContext, salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	cacheContext := append(baseInput, []byte("cache")...)
	cacheKey := argon2.IDKey(cacheContext, salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	return &RoomKeys{
		AccessKey: accessKey,
		CacheKey:  cacheKey,
	}, nil
}

// DeriveRoomKeysFromBase64Salt генерирует ключи из Base64-кодированной соли
func DeriveRoomKeysFromBase64Salt(passcode, roomName, saltBase64 string) (*RoomKeys, error) {
	salt, err := base64.StdEncoding.DecodeString(saltBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	return DeriveRoomKeys(passcode, roomName, salt)
}

// HashAccessKey хеширует access_key с использованием SHA256.
// Relay хранит только этот хеш; access_key уже защищен через Argon2id
func HashAccessKey(accessKey []byte) (string, error) {
	if len(accessKey) == 0 {
		return "", fmt.Errorf("access key cannot be empty")
	}

	hash := sha256.Sum256(accessKey)
	return hex.EncodeToString(hash[:]), nil
}

// VerifyAccessKey проверяет, соответствует ли access_key сохраненному хешу.
// Используется relay при входе участника в комнату
func VerifyAccessKey(accessKey []byte, hashedAccessKey string) error {
	if len(accessKey) == 0 {
		return fmt.Errorf("access key cannot be empty")
	}
	if hashedAccessKey == "" {
		return fmt.Errorf("hashed access key cannot be empty")
	}

	computedHash, err := HashAccessKey(accessKey)
	if err != nil {
		return fmt.Errorf("failed to compute access key hash: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(computedHash), []byte(hashedAccessKey)) != 1 {
		return fmt.Errorf("invalid access key")
	}

	return nil
}
