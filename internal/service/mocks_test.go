package service

import (
	"context"

	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id, name string) (*model.User, error) {
	args := m.Called(ctx, id, name)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (repo.Cascade, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repo.Cascade), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.AccountTypeRepository
type mockAccountTypeRepo struct{ mock.Mock }

func (m *mockAccountTypeRepo) Create(ctx context.Context, userID, name string) (*model.AccountType, error) {
	args := m.Called(ctx, userID, name)
	if at, ok := args.Get(0).(*model.AccountType); ok {
		return at, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountTypeRepo) Update(ctx context.Context, id, name string) (*model.AccountType, error) {
	args := m.Called(ctx, id, name)
	if at, ok := args.Get(0).(*model.AccountType); ok {
		return at, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountTypeRepo) Delete(ctx context.Context, id string) (repo.Cascade, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repo.Cascade), args.Error(1)
}

func (m *mockAccountTypeRepo) GetByID(ctx context.Context, id string) (*model.AccountType, error) {
	args := m.Called(ctx, id)
	if at, ok := args.Get(0).(*model.AccountType); ok {
		return at, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountTypeRepo) FindByName(ctx context.Context, userID, name string) (*model.AccountType, error) {
	args := m.Called(ctx, userID, name)
	if at, ok := args.Get(0).(*model.AccountType); ok {
		return at, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountTypeRepo) ListByUser(ctx context.Context, userID string) ([]model.AccountType, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.AccountType); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AccountTypeRepository = (*mockAccountTypeRepo)(nil)

// мок для repo.EntryRepository
type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Create(ctx context.Context, accountTypeID, key, value string) (*model.Entry, error) {
	args := m.Called(ctx, accountTypeID, key, value)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) Update(ctx context.Context, id, key, value string) (*model.Entry, error) {
	args := m.Called(ctx, id, key, value)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) Delete(ctx context.Context, id string) (repo.Cascade, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repo.Cascade), args.Error(1)
}

func (m *mockEntryRepo) GetByID(ctx context.Context, id string) (*model.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) FindByKey(ctx context.Context, accountTypeID, key string) (*model.Entry, error) {
	args := m.Called(ctx, accountTypeID, key)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) ListByAccountType(ctx context.Context, accountTypeID string) ([]model.Entry, error) {
	args := m.Called(ctx, accountTypeID)
	if v, ok := args.Get(0).([]model.Entry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) GetValue(ctx context.Context, accountTypeID, key string) (string, bool, error) {
	args := m.Called(ctx, accountTypeID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

var _ repo.EntryRepository = (*mockEntryRepo)(nil)
