package cancellation

import (
	"github.com/m04kA/TA-BookingEngine/internal/domain"
	"github.com/m04kA/TA-BookingEngine/pkg/types"
)

// Classification результат классификации отмены
type Classification struct {
	// Free true, если отмена бесплатная (asOf не позже даты отсечки)
	Free bool
	// CutoffDate последняя дата, в которую отмена ещё бесплатна
	CutoffDate types.Date
}

// Classify определяет, является ли отмена бронирования бесплатной.
//
//	cutoffDate = startDate - freeCancellationDaysBefore
//	free       = asOf <= cutoffDate
//
// Политика никогда не запрещает отмену: после отсечки отмена лишь
// помечается как платная. Единственный источник правды для даты отсечки -
// эта функция; клиентские поля вроде freeCancellationUntil всегда
// вычисляются, а не хранятся.
func Classify(tour *domain.Tour, startDate types.Date, asOf types.Date) Classification {
	cutoff := startDate.AddDays(-tour.FreeCancellationDaysBefore)

	return Classification{
		Free:       !asOf.After(cutoff),
		CutoffDate: cutoff,
	}
}
