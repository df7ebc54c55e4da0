package tourcatalog

import "errors"

var (
	// ErrTourNotFound возвращается, когда тур не найден в каталоге
	ErrTourNotFound = errors.New("tourcatalog: tour not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("tourcatalog: invalid response")

	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("tourcatalog: internal error")
)
