package submit_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("submit_booking: customer not found")

	// ErrStaffNotFound возвращается, когда мастер не найден или не работает
	ErrStaffNotFound = errors.New("submit_booking: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("submit_booking: service not found")

	// ErrInvalidDate возвращается при записи на прошедшую дату
	ErrInvalidDate = errors.New("submit_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда запись не помещается в доступные слоты
	ErrSlotNotAvailable = errors.New("submit_booking: slot is not available")

	// ErrBatchOverlap возвращается, когда записи пакета пересекаются у одного мастера
	ErrBatchOverlap = errors.New("submit_booking: appointments in batch overlap")

	// ErrBatchTooLarge возвращается, когда в пакете слишком много записей
	ErrBatchTooLarge = errors.New("submit_booking: batch is too large")

	// ErrSlotTaken возвращается, когда время уже занято другой записью
	ErrSlotTaken = errors.New("submit_booking: slot is already taken")

	// ErrDayLocked возвращается, когда день мастера изменяется параллельно
	ErrDayLocked = errors.New("submit_booking: staff day is locked")

	// ErrPartialFailure возвращается, когда часть пакета сохранена, а запись на позиции FailedIndex - нет
	ErrPartialFailure = errors.New("submit_booking: batch partially persisted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// EntryError ошибка конкретной позиции пакета
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

func entryError(index int, err error) error {
	return &EntryError{Index: index, Err: err}
}
