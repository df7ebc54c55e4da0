package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты (YYYY-MM-DD)
const DateLayout = "2006-01-02"

var errInvalidDate = errors.New("types: invalid date string format, expected YYYY-MM-DD")

// Date календарная дата без времени и часового пояса ("2025-06-15").
// Используется для дат заезда и ключей учёта мест: сравнение и хранение
// должны быть независимы от time zone и времени суток.
type Date string

// NewDate создает Date из time.Time (время суток отбрасывается)
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// NewDateFromString парсит дату из строки YYYY-MM-DD
func NewDateFromString(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", errInvalidDate
	}
	return Date(s), nil
}

// String возвращает строковое представление даты
func (d Date) String() string {
	return string(d)
}

// IsZero возвращает true для пустой даты
func (d Date) IsZero() bool {
	return d == ""
}

// Validate проверяет корректность формата даты
func (d Date) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return errInvalidDate
	}
	return nil
}

// Time возвращает дату как time.Time (полночь UTC)
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// AddDays возвращает дату, сдвинутую на days дней (может быть отрицательным)
func (d Date) AddDays(days int) Date {
	return NewDate(d.Time().AddDate(0, 0, days))
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After возвращает true, если d позже other
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Equal возвращает true для одинаковых дат
func (d Date) Equal(other Date) bool {
	return string(d) == string(other)
}

// Value реализует driver.Valuer для записи в БД
func (d Date) Value() (driver.Value, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает time.Time (колонки DATE) и строковые представления
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := NewDateFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := NewDateFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into Date", src)
	}
}
