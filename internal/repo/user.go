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

// UserRepository описывает доступ к пользователям.
type UserRepository interface {
	// Create добавляет пользователя. Имя уникально без учёта регистра.
	Create(ctx context.Context, name string) (*model.User, error)
	// Update переименовывает пользователя по id.
	Update(ctx context.Context, id, name string) (*model.User, error)
	// Delete удаляет пользователя вместе со всеми типами аккаунтов и записями.
	// Для отсутствующего id возвращается пустой Cascade без ошибки.
	Delete(ctx context.Context, id string) (Cascade, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// FindByName ищет пользователя по имени без учёта регистра.
	FindByName(ctx context.Context, name string) (*model.User, error)
	// List возвращает всех пользователей в порядке отображения.
	List(ctx context.Context) ([]model.User, error)
}

type userRepo struct {
	w  *writer
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, name string) (*model.User, error) {
	if err := ValidateName("user name", name); err != nil {
		return nil, err
	}
	u := &model.User{ID: uuid.NewString(), Name: name, NameFold: fold(name)}
	err := r.w.run(ctx, "create user", func(tx *gorm.DB) error {
		dup, err := exists(tx, &model.User{}, "name_fold = ?", u.NameFold)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: user %q already exists", ErrConstraint, name)
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) Update(ctx context.Context, id, name string) (*model.User, error) {
	if err := ValidateName("user name", name); err != nil {
		return nil, err
	}
	var u model.User
	err := r.w.run(ctx, "update user", func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", ErrNotFound, id)
			}
			return err
		}
		f := fold(name)
		dup, err := exists(tx, &model.User{}, "name_fold = ? AND id <> ?", f, id)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: user %q already exists", ErrConstraint, name)
		}
		u.Name, u.NameFold, u.UpdatedAt = name, f, time.Now()
		return tx.Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
			"name":       u.Name,
			"name_fold":  u.NameFold,
			"updated_at": u.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) (Cascade, error) {
	var c Cascade
	err := r.w.run(ctx, "delete user", func(tx *gorm.DB) error {
		var users []model.User
		if err := tx.Where("id = ?", id).Limit(1).Find(&users).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		var types []model.AccountType
		if err := tx.Where("user_id = ?", id).Find(&types).Error; err != nil {
			return err
		}
		entries, err := deleteAccountTypes(tx, types)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.User{}).Error; err != nil {
			return err
		}
		c = Cascade{Users: users, AccountTypes: types, Entries: entries}
		return nil
	})
	if err != nil {
		return Cascade{}, err
	}
	return c, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, storageFault("get user", err)
	}
	return &u, nil
}

func (r *userRepo) FindByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "name_fold = ?", fold(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, name)
		}
		return nil, storageFault("find user", err)
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := r.db.WithContext(ctx).Order("name_fold ASC").Find(&users).Error; err != nil {
		return nil, storageFault("list users", err)
	}
	return users, nil
}
