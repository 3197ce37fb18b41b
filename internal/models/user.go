// Package models содержит доменные модели пользователя и расходов,
// используемые в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется наружу: поле помечено json:"-"
// и полностью отсутствует в любом ответе сервера.
type User struct {
	ID           int64     `json:"user_id"`       // Уникальный идентификатор, выдается базой
	DisplayName  string    `json:"display_name"`  // Отображаемое имя, не уникальное
	Email        string    `json:"email"`         // Электронная почта, уникальная, логин пользователя
	PasswordHash string    `json:"-"`             // PHC-строка argon2id, наружу не отдается
	CreationTime time.Time `json:"creation_time"` // Дата создания, выставляется один раз
}
