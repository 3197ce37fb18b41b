// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает argon2id-хеш пароля в самоописывающем PHC-формате
// ($argon2id$v=19$m=...,t=...,p=...$salt$digest). Параметры алгоритма
// зашиты в строку, поэтому их можно менять без миграции схемы:
// CompareHash читает параметры из сохранённой строки, а не из текущих дефолтов.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrMismatchedHashAndPassword возвращается, когда пароль не соответствует хешу.
	ErrMismatchedHashAndPassword = errors.New("password does not match hash")
	// ErrInvalidHash возвращается для некорректной или неподдерживаемой PHC-строки.
	ErrInvalidHash = errors.New("invalid password hash format")
)

// Params задает стоимостные параметры argon2id.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams возвращает рекомендованные OWASP параметры argon2id.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024, // 64 MiB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// GetHash принимает пароль пользователя и возвращает его argon2id-хеш
// в PHC-формате. Соль генерируется заново при каждом вызове, поэтому
// два вызова для одного пароля дают разные строки.
func (p Params) GetHash(pw string) (string, error) {
	const op = "password.GetHash"

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	digest := argon2.IDKey([]byte(pw), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Digest := base64.RawStdEncoding.EncodeToString(digest)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism, b64Salt, b64Digest), nil
}

// GetHash хеширует пароль с параметрами по умолчанию.
func GetHash(pw string) (string, error) {
	return DefaultParams().GetHash(pw)
}

// CompareHash сравнивает сохранённый PHC-хеш с введённым паролем.
//
// Пересчитывает digest с параметрами и солью из самой строки и сравнивает
// за константное время. Возвращает nil при совпадении,
// ErrMismatchedHashAndPassword при несовпадении и ErrInvalidHash,
// если строка не парсится. Никогда не паникует на мусорном входе.
func CompareHash(encodedHash, pw string) error {
	const op = "password.CompareHash"

	params, salt, digest, err := decodeHash(encodedHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	other := argon2.IDKey([]byte(pw), salt,
		params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	if subtle.ConstantTimeCompare(digest, other) != 1 {
		return fmt.Errorf("%s: %w", op, ErrMismatchedHashAndPassword)
	}
	return nil
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(digest))
	return p, salt, digest, nil
}
