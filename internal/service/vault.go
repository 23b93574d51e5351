package service

import (
	"context"

	"VaultKeeper/internal/model"
	"VaultKeeper/internal/observe"
	"VaultKeeper/internal/repo"

	"go.uber.org/zap"
)

// Топики уведомлений об изменениях.
const topicUsers = "users"

func topicAccountTypes(userID string) string { return "account_types/" + userID }

func topicEntries(accountTypeID string) string { return "entries/" + accountTypeID }

// VaultService служит единой точкой доступа к хранилищу: мутации делегируются
// репозиториям, наблюдение строится на observe.Watch.
// Ошибки репозиториев возвращаются без изменений.
type VaultService struct {
	users        repo.UserRepository
	accountTypes repo.AccountTypeRepository
	entries      repo.EntryRepository

	hub *observe.Hub
	log *zap.SugaredLogger
}

// NewVaultService собирает сервис поверх трёх репозиториев.
func NewVaultService(users repo.UserRepository, accountTypes repo.AccountTypeRepository, entries repo.EntryRepository, log *zap.SugaredLogger) *VaultService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &VaultService{
		users:        users,
		accountTypes: accountTypes,
		entries:      entries,
		hub:          observe.NewHub(log),
		log:          log,
	}
}

// NewVaultServiceFromStore собирает сервис над repo.Store.
func NewVaultServiceFromStore(s *repo.Store, log *zap.SugaredLogger) *VaultService {
	return NewVaultService(s.Users, s.AccountTypes, s.Entries, log)
}

// Close завершает все открытые потоки наблюдения. Повторный вызов безопасен.
func (s *VaultService) Close() {
	s.hub.Close()
}

// publishCascade уведомляет все области, затронутые удалением.
func (s *VaultService) publishCascade(c repo.Cascade) {
	if c.Empty() {
		return
	}
	topics := make([]string, 0, 1+len(c.Users)+len(c.AccountTypes)+len(c.Entries))
	if len(c.Users) > 0 {
		topics = append(topics, topicUsers)
	}
	for _, u := range c.Users {
		topics = append(topics, topicAccountTypes(u.ID))
	}
	for _, at := range c.AccountTypes {
		topics = append(topics, topicAccountTypes(at.UserID), topicEntries(at.ID))
	}
	for _, e := range c.Entries {
		topics = append(topics, topicEntries(e.AccountTypeID))
	}
	s.hub.Publish(dedupe(topics)...)
}

func dedupe(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := topics[:0]
	for _, t := range topics {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ---- пользователи ----

// AddUser создаёт пользователя.
func (s *VaultService) AddUser(ctx context.Context, name string) (*model.User, error) {
	u, err := s.users.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(topicUsers)
	return u, nil
}

// UpdateUser переименовывает пользователя.
func (s *VaultService) UpdateUser(ctx context.Context, id, name string) (*model.User, error) {
	u, err := s.users.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(topicUsers)
	return u, nil
}

// DeleteUser удаляет пользователя со всеми типами аккаунтов и записями.
func (s *VaultService) DeleteUser(ctx context.Context, id string) (repo.Cascade, error) {
	c, err := s.users.Delete(ctx, id)
	if err != nil {
		return repo.Cascade{}, err
	}
	s.publishCascade(c)
	return c, nil
}

// ---- типы аккаунтов ----

func (s *VaultService) AddAccountType(ctx context.Context, userID, name string) (*model.AccountType, error) {
	at, err := s.accountTypes.Create(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(topicAccountTypes(at.UserID))
	return at, nil
}

func (s *VaultService) UpdateAccountType(ctx context.Context, id, name string) (*model.AccountType, error) {
	at, err := s.accountTypes.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(topicAccountTypes(at.UserID))
	return at, nil
}

func (s *VaultService) DeleteAccountType(ctx context.Context, id string) (repo.Cascade, error) {
	c, err := s.accountTypes.Delete(ctx, id)
	if err != nil {
		return repo.Cascade{}, err
	}
	s.publishCascade(c)
	return c, nil
}

// ---- записи ----

func (s *VaultService) AddEntry(ctx context.Context, accountTypeID, key, value string) (*model.Entry, error) {
	e, err := s.entries.Create(ctx, accountTypeID, key, value)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(topicEntries(e.AccountTypeID))
	return e, nil
}

func (s *VaultService) UpdateEntry(ctx context.Context, id, key, value string) (*model.Entry, error) {
	e, err := s.entries.Update(ctx, id, key, value)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(topicEntries(e.AccountTypeID))
	return e, nil
}

func (s *VaultService) DeleteEntry(ctx context.Context, id string) (repo.Cascade, error) {
	c, err := s.entries.Delete(ctx, id)
	if err != nil {
		return repo.Cascade{}, err
	}
	s.publishCascade(c)
	return c, nil
}

// ---- наблюдение ----

// ObserveUsers возвращает живой список пользователей в порядке отображения.
func (s *VaultService) ObserveUsers(ctx context.Context) *observe.Stream[[]model.User] {
	return observe.Watch(ctx, s.hub, topicUsers, s.users.List, s.log)
}

// ObserveAccountTypes возвращает живой список типов аккаунтов пользователя.
func (s *VaultService) ObserveAccountTypes(ctx context.Context, userID string) *observe.Stream[[]model.AccountType] {
	q := func(ctx context.Context) ([]model.AccountType, error) {
		return s.accountTypes.ListByUser(ctx, userID)
	}
	return observe.Watch(ctx, s.hub, topicAccountTypes(userID), q, s.log)
}

// ObserveEntries возвращает живой список записей типа аккаунта.
func (s *VaultService) ObserveEntries(ctx context.Context, accountTypeID string) *observe.Stream[[]model.Entry] {
	q := func(ctx context.Context) ([]model.Entry, error) {
		return s.entries.ListByAccountType(ctx, accountTypeID)
	}
	return observe.Watch(ctx, s.hub, topicEntries(accountTypeID), q, s.log)
}

// ObserveValue возвращает живое значение записи по ключу; nil, если записи нет.
func (s *VaultService) ObserveValue(ctx context.Context, accountTypeID, key string) *observe.Stream[*string] {
	q := func(ctx context.Context) (*string, error) {
		v, ok, err := s.entries.GetValue(ctx, accountTypeID, key)
		if err != nil || !ok {
			return nil, err
		}
		return &v, nil
	}
	return observe.Watch(ctx, s.hub, topicEntries(accountTypeID), q, s.log)
}

// ---- разовые чтения ----

func (s *VaultService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *VaultService) ListAccountTypes(ctx context.Context, userID string) ([]model.AccountType, error) {
	return s.accountTypes.ListByUser(ctx, userID)
}

func (s *VaultService) ListEntries(ctx context.Context, accountTypeID string) ([]model.Entry, error) {
	return s.entries.ListByAccountType(ctx, accountTypeID)
}

// GetValue возвращает значение по ключу; found=false, если записи нет.
func (s *VaultService) GetValue(ctx context.Context, accountTypeID, key string) (string, bool, error) {
	return s.entries.GetValue(ctx, accountTypeID, key)
}

// FindUserByName ищет пользователя по имени без учёта регистра.
func (s *VaultService) FindUserByName(ctx context.Context, name string) (*model.User, error) {
	return s.users.FindByName(ctx, name)
}

func (s *VaultService) FindAccountTypeByName(ctx context.Context, userID, name string) (*model.AccountType, error) {
	return s.accountTypes.FindByName(ctx, userID, name)
}

func (s *VaultService) FindEntryByKey(ctx context.Context, accountTypeID, key string) (*model.Entry, error) {
	return s.entries.FindByKey(ctx, accountTypeID, key)
}
