package schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("schedule: staff not found")

	// ErrUnknownTemplate возвращается для неизвестного шаблона
	ErrUnknownTemplate = errors.New("schedule: unknown template")

	// ErrInvalidTime возвращается, когда время не совпадает со слотом сетки
	ErrInvalidTime = errors.New("schedule: time is not a slot of the day")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrRangeTooLong возвращается, когда диапазон дат превышает ограничение
	ErrRangeTooLong = errors.New("schedule: date range is too long")

	// ErrDayLocked возвращается, когда день мастера редактируется параллельно
	ErrDayLocked = errors.New("schedule: day is being edited by another request")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
