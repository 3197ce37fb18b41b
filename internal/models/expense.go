package models

import "time"

// Expense представляет собой запись о расходе пользователя.
// Сумма хранится в минорных единицах валюты (копейки/центы),
// чтобы не работать с плавающей точкой при денежных операциях.
type Expense struct {
	ID          int64     `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	Amount      int64     `json:"amount"` // Сумма в минорных единицах
	ExpenseTime time.Time `json:"expense_time"`
	Comment     string    `json:"comment,omitempty"`
	Tags        []Tag     `json:"tags"`
}

// Tag — категория расхода. Имя уникально в пределах пользователя.
type Tag struct {
	ID   int64  `json:"tag_id"`
	Name string `json:"name"`
}

// DummyExpense используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Expense.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyExpense struct {
	Amount      int64    `json:"amount" validate:"required,gt=0"`            // Сумма (>0), минорные единицы
	ExpenseTime string   `json:"expense_time" validate:"required"`           // Дата в формате 02-01-2006
	Comment     string   `json:"comment,omitempty" validate:"omitempty,max=500"` // Комментарий (опционально)
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`    // Имена категорий
}

// FilterSum представляет параметры фильтрации, которые передаются в слой доступа к данным
// при подсчёте суммы расходов за период.
type FilterSum struct {
	UserID    int64
	Tag       *string // Имя категории (nil, если фильтра по категории нет)
	StartDate time.Time
	EndDate   time.Time
}

// DummyFilterSum используется для приёма параметров фильтра из JSON-запроса
// до их валидации и преобразования в FilterSum. Даты приходят строками.
type DummyFilterSum struct {
	Tag       string `json:"tag,omitempty" validate:"omitempty"`
	StartDate string `json:"start_date" validate:"required"` // Дата начала периода, 02-01-2006
	EndDate   string `json:"end_date" validate:"required"`   // Дата окончания периода, 02-01-2006
}
