package documents

import "errors"

var (
	// ErrSummaryNotFound возвращается, когда у бронирования нет документов
	ErrSummaryNotFound = errors.New("documents: summary not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса документов
	ErrInvalidResponse = errors.New("documents: invalid response")

	// ErrServiceDegraded возвращается при недоступности сервиса документов;
	// чтение бронирований при этом продолжает работать без сводки документов
	ErrServiceDegraded = errors.New("documents: service degraded")

	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("documents: internal error")
)
