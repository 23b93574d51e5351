package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"VaultKeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryRepository описывает доступ к записям ключ/значение.
type EntryRepository interface {
	// Create добавляет запись в тип аккаунта accountTypeID.
	Create(ctx context.Context, accountTypeID, key, value string) (*model.Entry, error)
	// Update меняет ключ и значение записи; тип аккаунта не меняется.
	Update(ctx context.Context, id, key, value string) (*model.Entry, error)
	// Delete удаляет запись. Отсутствующий id не считается ошибкой.
	Delete(ctx context.Context, id string) (Cascade, error)
	GetByID(ctx context.Context, id string) (*model.Entry, error)
	FindByKey(ctx context.Context, accountTypeID, key string) (*model.Entry, error)
	// ListByAccountType возвращает записи типа в порядке отображения (по ключу).
	ListByAccountType(ctx context.Context, accountTypeID string) ([]model.Entry, error)
	// GetValue ищет значение по типу и ключу (без учёта регистра).
	// Если записи нет, found=false без ошибки.
	GetValue(ctx context.Context, accountTypeID, key string) (value string, found bool, err error)
}

type entryRepo struct {
	w  *writer
	db *gorm.DB
}

func validateEntry(key, value string) error {
	if err := ValidateName("key", key); err != nil {
		return err
	}
	return ValidateValue(value)
}

func (r *entryRepo) Create(ctx context.Context, accountTypeID, key, value string) (*model.Entry, error) {
	if err := validateEntry(key, value); err != nil {
		return nil, err
	}
	e := &model.Entry{
		ID:            uuid.NewString(),
		AccountTypeID: accountTypeID,
		Key:           key,
		KeyFold:       fold(key),
		Value:         value,
	}
	err := r.w.run(ctx, "create entry", func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.AccountType{}, "id = ?", accountTypeID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: account type %s does not exist", ErrConstraint, accountTypeID)
		}
		dup, err := exists(tx, &model.Entry{}, "account_type_id = ? AND key_fold = ?", accountTypeID, e.KeyFold)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: key %q already exists", ErrConstraint, key)
		}
		return tx.Omit("AccountType").Create(e).Error
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *entryRepo) Update(ctx context.Context, id, key, value string) (*model.Entry, error) {
	if err := validateEntry(key, value); err != nil {
		return nil, err
	}
	var e model.Entry
	err := r.w.run(ctx, "update entry", func(tx *gorm.DB) error {
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: entry %s", ErrNotFound, id)
			}
			return err
		}
		f := fold(key)
		dup, err := exists(tx, &model.Entry{}, "account_type_id = ? AND key_fold = ? AND id <> ?", e.AccountTypeID, f, id)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: key %q already exists", ErrConstraint, key)
		}
		e.Key, e.KeyFold, e.Value, e.UpdatedAt = key, f, value, time.Now()
		return tx.Model(&model.Entry{}).Where("id = ?", id).Updates(map[string]any{
			"key":        e.Key,
			"key_fold":   e.KeyFold,
			"value":      e.Value,
			"updated_at": e.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) Delete(ctx context.Context, id string) (Cascade, error) {
	var c Cascade
	err := r.w.run(ctx, "delete entry", func(tx *gorm.DB) error {
		var entries []model.Entry
		if err := tx.Select("id", "account_type_id", "key").
			Where("id = ?", id).Limit(1).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Where("id = ?", id).Delete(&model.Entry{}).Error; err != nil {
			return err
		}
		c = Cascade{Entries: entries}
		return nil
	})
	if err != nil {
		return Cascade{}, err
	}
	return c, nil
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.Entry, error) {
	var e model.Entry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: entry %s", ErrNotFound, id)
		}
		return nil, storageFault("get entry", err)
	}
	return &e, nil
}

func (r *entryRepo) FindByKey(ctx context.Context, accountTypeID, key string) (*model.Entry, error) {
	var e model.Entry
	err := r.db.WithContext(ctx).First(&e, "account_type_id = ? AND key_fold = ?", accountTypeID, fold(key)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: key %q", ErrNotFound, key)
		}
		return nil, storageFault("find entry", err)
	}
	return &e, nil
}

func (r *entryRepo) ListByAccountType(ctx context.Context, accountTypeID string) ([]model.Entry, error) {
	entries := []model.Entry{}
	err := r.db.WithContext(ctx).
		Where("account_type_id = ?", accountTypeID).
		Order("key_fold ASC").
		Find(&entries).Error
	if err != nil {
		return nil, storageFault("list entries", err)
	}
	return entries, nil
}

func (r *entryRepo) GetValue(ctx context.Context, accountTypeID, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, nil
	}
	var values []string
	err := r.db.WithContext(ctx).
		Model(&model.Entry{}).
		Where("account_type_id = ? AND key_fold = ?", accountTypeID, fold(key)).
		Limit(1).
		Pluck("value", &values).Error
	if err != nil {
		return "", false, storageFault("get value", err)
	}
	if len(values) == 0 {
		return "", false, nil
	}
	return values[0], true, nil
}
