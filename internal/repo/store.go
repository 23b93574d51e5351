package repo

import (
	"context"
	"errors"
	"sync"

	"VaultKeeper/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store объединяет три репозитория поверх одной БД и общий writer-lock.
// Все мутации сериализуются и выполняются в одной транзакции каждая, поэтому
// проверки уникальности и каскадное удаление видны читателям атомарно.
type Store struct {
	db      *gorm.DB
	dialect Dialect
	log     *zap.SugaredLogger

	Users        UserRepository
	AccountTypes AccountTypeRepository
	Entries      EntryRepository
}

// writer сериализует мутации всех трёх таблиц.
type writer struct {
	mu  sync.Mutex
	db  *gorm.DB
	log *zap.SugaredLogger
}

// run выполняет fn в транзакции под writer-lock. Отмена ctx вызывающим не прерывает
// начатую мутацию: она либо завершается, либо откатывается целиком.
func (w *writer) run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.db.WithContext(context.WithoutCancel(ctx)).Transaction(fn)
	if err != nil {
		err = classify(op, err)
		if errors.Is(err, ErrStorage) {
			w.log.Errorw("mutation failed", "op", op, "error", err)
		} else {
			w.log.Debugw("mutation rejected", "op", op, "error", err)
		}
	}
	return err
}

// NewStore создаёт движок поверх уже открытой и смигрированной БД.
func NewStore(db *gorm.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	w := &writer{db: db, log: log}
	return &Store{
		db:           db,
		dialect:      dialectOf(db),
		log:          log,
		Users:        &userRepo{w: w, db: db},
		AccountTypes: &accountTypeRepo{w: w, db: db},
		Entries:      &entryRepo{w: w, db: db},
	}
}

// Open открывает БД по dsn (путь к SQLite-файлу или DSN Postgres) и возвращает Store.
func Open(ctx context.Context, dsn string, log *zap.SugaredLogger) (*Store, error) {
	db, dialect, err := InitDB(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	s := NewStore(db, log)
	s.dialect = dialect
	return s, nil
}

func dialectOf(db *gorm.DB) Dialect {
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return DialectPostgres
	}
	return DialectSQLite
}

// Dialect возвращает диалект открытой БД.
func (s *Store) Dialect() Dialect {
	if s == nil {
		return ""
	}
	return s.dialect
}

// Close закрывает соединение с БД. Повторный вызов безопасен.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats содержит количество записей каждого вида.
type Stats struct {
	Users        int64
	AccountTypes int64
	Entries      int64
}

// Stats считает записи во всех трёх таблицах.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)
	if err := db.Model(&model.User{}).Count(&st.Users).Error; err != nil {
		return Stats{}, storageFault("count users", err)
	}
	if err := db.Model(&model.AccountType{}).Count(&st.AccountTypes).Error; err != nil {
		return Stats{}, storageFault("count account types", err)
	}
	if err := db.Model(&model.Entry{}).Count(&st.Entries).Error; err != nil {
		return Stats{}, storageFault("count entries", err)
	}
	return st, nil
}

// Cascade перечисляет всё, что удалила операция Delete. Значения записей не загружаются.
type Cascade struct {
	Users        []model.User
	AccountTypes []model.AccountType
	Entries      []model.Entry
}

// Empty сообщает, что удалять было нечего (id не существовал).
func (c Cascade) Empty() bool {
	return len(c.Users) == 0 && len(c.AccountTypes) == 0 && len(c.Entries) == 0
}

// deleteAccountTypes удаляет типы аккаунтов вместе с их записями внутри транзакции.
func deleteAccountTypes(tx *gorm.DB, types []model.AccountType) ([]model.Entry, error) {
	if len(types) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(types))
	for _, t := range types {
		ids = append(ids, t.ID)
	}
	var entries []model.Entry
	if err := tx.Select("id", "account_type_id", "key").
		Where("account_type_id IN ?", ids).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("account_type_id IN ?", ids).Delete(&model.Entry{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN ?", ids).Delete(&model.AccountType{}).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// exists проверяет наличие хотя бы одной строки по условию.
func exists(tx *gorm.DB, m any, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(m).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
