// Package session реализует сессионные cookie на основе PASETO v4.local.
//
// Токен симметрично шифруется и аутентифицируется (XChaCha20-Poly1305),
// поэтому клиент не может ни прочитать, ни подделать содержимое cookie.
// Серверного состояния у сессии нет: logout лишь очищает cookie на клиенте,
// украденный токен остаётся валидным до истечения срока или смены ключа.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

// CookieName — имя сессионной cookie.
const CookieName = "session"

// KeyLength — требуемая длина симметричного ключа в байтах.
const KeyLength = 32

// ErrInvalidKey возвращается, если ключ шифрования не равен 32 байтам.
// Запуск процесса с таким ключом должен завершаться ошибкой, а не
// тихой деградацией.
var ErrInvalidKey = errors.New("session key must be exactly 32 bytes")

// Manager выпускает и проверяет сессионные токены.
// Создается один раз при старте процесса и передается по ссылке,
// ключ после старта только читается.
type Manager struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
}

// New создает Manager из 32-байтового ключа и срока жизни сессии.
func New(key []byte, ttl time.Duration) (*Manager, error) {
	const op = "session.New"

	if len(key) != KeyLength {
		return nil, fmt.Errorf("%s: %w: got %d bytes", op, ErrInvalidKey, len(key))
	}
	symmetric, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Manager{key: symmetric, ttl: ttl}, nil
}

// TTL возвращает срок жизни выпускаемых сессий.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish выпускает токен, привязанный к идентификатору пользователя.
func (m *Manager) Establish(userID int64) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(m.ttl))
	token.SetJti(uuid.NewString())
	token.SetString("user_id", strconv.FormatInt(userID, 10))

	return token.V4Encrypt(m.key, nil), nil
}

// Resolve извлекает идентификатор пользователя из токена.
//
// Возвращает (0, false) для пустого, просроченного или подделанного
// токена — отсутствие сессии, а не ошибка. Обработчик при этом должен
// отклонить запрос, а не упасть.
func (m *Manager) Resolve(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}

	parser := paseto.NewParser() // проверяет exp/nbf по умолчанию
	parsed, err := parser.ParseV4Local(m.key, token, nil)
	if err != nil {
		return 0, false
	}

	raw, err := parsed.GetString("user_id")
	if err != nil {
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// SetCookie устанавливает сессионную cookie с выпущенным токеном.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie указывает клиенту удалить сессионную cookie.
// Серверного состояния для очистки нет.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest достает токен сессии из запроса.
// Возвращает пустую строку, если cookie отсутствует.
func FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
