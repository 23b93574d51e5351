package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"VaultKeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountTypeRepository описывает доступ к типам аккаунтов пользователя.
type AccountTypeRepository interface {
	// Create добавляет тип аккаунта пользователю userID.
	// Несуществующий пользователь и дубликат имени дают ErrConstraint.
	Create(ctx context.Context, userID, name string) (*model.AccountType, error)
	// Update переименовывает тип; владелец не меняется.
	Update(ctx context.Context, id, name string) (*model.AccountType, error)
	// Delete удаляет тип вместе с записями. Отсутствующий id не считается ошибкой.
	Delete(ctx context.Context, id string) (Cascade, error)
	GetByID(ctx context.Context, id string) (*model.AccountType, error)
	FindByName(ctx context.Context, userID, name string) (*model.AccountType, error)
	// ListByUser возвращает типы пользователя в порядке отображения.
	ListByUser(ctx context.Context, userID string) ([]model.AccountType, error)
}

type accountTypeRepo struct {
	w  *writer
	db *gorm.DB
}

func (r *accountTypeRepo) Create(ctx context.Context, userID, name string) (*model.AccountType, error) {
	if err := ValidateName("account type name", name); err != nil {
		return nil, err
	}
	at := &model.AccountType{ID: uuid.NewString(), UserID: userID, Name: name, NameFold: fold(name)}
	err := r.w.run(ctx, "create account type", func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.User{}, "id = ?", userID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: user %s does not exist", ErrConstraint, userID)
		}
		dup, err := exists(tx, &model.AccountType{}, "user_id = ? AND name_fold = ?", userID, at.NameFold)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: account type %q already exists", ErrConstraint, name)
		}
		return tx.Omit("User").Create(at).Error
	})
	if err != nil {
		return nil, err
	}
	return at, nil
}

func (r *accountTypeRepo) Update(ctx context.Context, id, name string) (*model.AccountType, error) {
	if err := ValidateName("account type name", name); err != nil {
		return nil, err
	}
	var at model.AccountType
	err := r.w.run(ctx, "update account type", func(tx *gorm.DB) error {
		if err := tx.First(&at, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: account type %s", ErrNotFound, id)
			}
			return err
		}
		f := fold(name)
		dup, err := exists(tx, &model.AccountType{}, "user_id = ? AND name_fold = ? AND id <> ?", at.UserID, f, id)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: account type %q already exists", ErrConstraint, name)
		}
		at.Name, at.NameFold, at.UpdatedAt = name, f, time.Now()
		return tx.Model(&model.AccountType{}).Where("id = ?", id).Updates(map[string]any{
			"name":       at.Name,
			"name_fold":  at.NameFold,
			"updated_at": at.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (r *accountTypeRepo) Delete(ctx context.Context, id string) (Cascade, error) {
	var c Cascade
	err := r.w.run(ctx, "delete account type", func(tx *gorm.DB) error {
		var types []model.AccountType
		if err := tx.Where("id = ?", id).Limit(1).Find(&types).Error; err != nil {
			return err
		}
		entries, err := deleteAccountTypes(tx, types)
		if err != nil {
			return err
		}
		c = Cascade{AccountTypes: types, Entries: entries}
		return nil
	})
	if err != nil {
		return Cascade{}, err
	}
	return c, nil
}

func (r *accountTypeRepo) GetByID(ctx context.Context, id string) (*model.AccountType, error) {
	var at model.AccountType
	if err := r.db.WithContext(ctx).First(&at, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account type %s", ErrNotFound, id)
		}
		return nil, storageFault("get account type", err)
	}
	return &at, nil
}

func (r *accountTypeRepo) FindByName(ctx context.Context, userID, name string) (*model.AccountType, error) {
	var at model.AccountType
	err := r.db.WithContext(ctx).First(&at, "user_id = ? AND name_fold = ?", userID, fold(name)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account type %q", ErrNotFound, name)
		}
		return nil, storageFault("find account type", err)
	}
	return &at, nil
}

func (r *accountTypeRepo) ListByUser(ctx context.Context, userID string) ([]model.AccountType, error) {
	types := []model.AccountType{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name_fold ASC").
		Find(&types).Error
	if err != nil {
		return nil, storageFault("list account types", err)
	}
	return types, nil
}
