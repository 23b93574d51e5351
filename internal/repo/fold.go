package repo

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// fold возвращает ключ регистронезависимого сравнения. Тот же ключ задаёт порядок отображения.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ValidateName проверяет имя пользователя, типа аккаунта или ключ записи.
func ValidateName(what, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, what)
	}
	return nil
}

// ValidateValue проверяет значение записи.
func ValidateValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: value is required", ErrValidation)
	}
	return nil
}
