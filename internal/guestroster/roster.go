package guestroster

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/m04kA/TA-BookingEngine/internal/domain"
)

var (
	// ErrInvalidCounts возвращается при недопустимом количестве гостей
	ErrInvalidCounts = errors.New("guestroster: invalid guest counts")

	// ErrEntryCountMismatch возвращается, когда число записей гостей
	// не совпадает с количеством гостей
	ErrEntryCountMismatch = errors.New("guestroster: guest entries count mismatch")

	// ErrEntryOrder возвращается при нарушении порядка записей
	// (сначала взрослые, затем дети)
	ErrEntryOrder = errors.New("guestroster: guest entries out of order")

	// ErrInvalidName возвращается, когда имя гостя не проходит политику имён
	ErrInvalidName = errors.New("guestroster: invalid guest name")
)

// namePattern политика имён: латинские буквы, дефисы, апострофы и пробелы,
// первая позиция - буква. Длина проверяется отдельно.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z' -]*$`)

// ValidateCounts проверяет количество гостей против лимитов тура
func ValidateCounts(tour *domain.Tour, guests domain.GuestCounts) error {
	if guests.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidCounts)
	}
	if guests.Children < 0 {
		return fmt.Errorf("%w: children count cannot be negative", ErrInvalidCounts)
	}
	if guests.Adults > tour.MaxAdults {
		return fmt.Errorf("%w: adults=%d exceeds tour maximum %d", ErrInvalidCounts, guests.Adults, tour.MaxAdults)
	}
	if guests.Children > tour.MaxChildren {
		return fmt.Errorf("%w: children=%d exceeds tour maximum %d", ErrInvalidCounts, guests.Children, tour.MaxChildren)
	}
	if guests.Total() > tour.MaxAdults+tour.MaxChildren {
		return fmt.Errorf("%w: total guests=%d exceeds tour maximum %d",
			ErrInvalidCounts, guests.Total(), tour.MaxAdults+tour.MaxChildren)
	}
	return nil
}

// ValidateEntries проверяет список именованных гостей:
// длина равна общему количеству гостей, порядок "взрослые, затем дети",
// каждое имя проходит политику имён
func ValidateEntries(entries []domain.GuestEntry, guests domain.GuestCounts) error {
	if len(entries) != guests.Total() {
		return fmt.Errorf("%w: got %d entries, expected %d", ErrEntryCountMismatch, len(entries), guests.Total())
	}

	for i, entry := range entries {
		expected := domain.GuestAdult
		if i >= guests.Adults {
			expected = domain.GuestChild
		}
		if entry.Type != expected {
			return fmt.Errorf("%w: entry %d has type %q, expected %q", ErrEntryOrder, i, entry.Type, expected)
		}

		if err := validateName(entry.FirstName); err != nil {
			return fmt.Errorf("%w: entry %d firstName: %v", ErrInvalidName, i, err)
		}
		if err := validateName(entry.LastName); err != nil {
			return fmt.Errorf("%w: entry %d lastName: %v", ErrInvalidName, i, err)
		}
	}

	return nil
}

func validateName(name string) error {
	if len(name) < domain.MinGuestNameLength {
		return fmt.Errorf("shorter than %d characters", domain.MinGuestNameLength)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("longer than %d characters", domain.MaxGuestNameLength)
	}
	if !namePattern.MatchString(name) {
		return errors.New("only latin letters, hyphens, apostrophes and spaces are allowed")
	}
	return nil
}

// FillTypes заполняет опущенные типы гостей позиционно: первые adults
// записей считаются взрослыми, остальные - детьми. Явно указанные типы
// не переопределяются, порядок записей не меняется. Клиенты могут
// передавать список personalDetails без поля type
func FillTypes(entries []domain.GuestEntry, guests domain.GuestCounts) []domain.GuestEntry {
	out := make([]domain.GuestEntry, len(entries))
	for i, e := range entries {
		if e.Type == "" {
			if i < guests.Adults {
				e.Type = domain.GuestAdult
			} else {
				e.Type = domain.GuestChild
			}
		}
		out[i] = e
	}
	return out
}

// Normalize согласует список гостей с новыми количествами взрослых и детей.
// Возвращает новый список длиной adults+children: существующие записи
// сохраняются по позициям внутри своей группы (взрослые отдельно, дети
// отдельно), новые слоты добиваются пустыми записями, лишние отсекаются
// с конца группы. Результат не зависит от того, какое из количеств
// изменилось первым.
func Normalize(existing []domain.GuestEntry, adults, children int) []domain.GuestEntry {
	var existingAdults, existingChildren []domain.GuestEntry
	for _, e := range existing {
		if e.Type == domain.GuestChild {
			existingChildren = append(existingChildren, e)
		} else {
			existingAdults = append(existingAdults, e)
		}
	}

	result := make([]domain.GuestEntry, 0, adults+children)
	result = append(result, resize(existingAdults, adults, domain.GuestAdult)...)
	result = append(result, resize(existingChildren, children, domain.GuestChild)...)

	return result
}

// resize подгоняет группу записей под размер n, добивая пустыми записями
// типа t или отсекая с конца
func resize(group []domain.GuestEntry, n int, t domain.GuestType) []domain.GuestEntry {
	out := make([]domain.GuestEntry, 0, n)
	for i := 0; i < n; i++ {
		if i < len(group) {
			out = append(out, group[i])
			continue
		}
		out = append(out, domain.GuestEntry{Type: t})
	}
	return out
}
