package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrValidation: пустое имя/ключ/значение; хранилище не затрагивается.
	ErrValidation = errors.New("validation failed")
	// ErrConstraint: нарушение уникальности в пределах родителя или несуществующий родитель.
	ErrConstraint = errors.New("constraint violated")
	// ErrNotFound: запись с указанным id отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrStorage: сбой хранилища (I/O, повреждение, драйвер).
	ErrStorage = errors.New("storage fault")
)

// storageFault оборачивает ошибку драйвера так, чтобы сработали и errors.Is(err, ErrStorage),
// и проверка исходной ошибки.
func storageFault(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// isUniqueViolation распознаёт нарушение уникального индекса на уровне БД.
// Postgres-драйвер переводит его в gorm.ErrDuplicatedKey (TranslateError),
// modernc sqlite отдаёт только текст.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation распознаёт ссылку на несуществующего родителя.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// classify переводит ошибку записи в таксономию пакета.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConstraint), errors.Is(err, ErrNotFound), errors.Is(err, ErrStorage):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: duplicate name", op, ErrConstraint)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: parent does not exist", op, ErrConstraint)
	default:
		return storageFault(op, err)
	}
}
