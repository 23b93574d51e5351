// Package search собирает путь выбора пользователь → тип аккаунта → ключ
// в одно значение и пересчитывает его при изменении любого звена.
package search

import (
	"context"
	"strings"
	"sync"

	"VaultKeeper/internal/model"
	"VaultKeeper/internal/observe"

	"go.uber.org/zap"
)

// Source описывает наблюдаемую часть хранилища, на которую опирается Resolver.
type Source interface {
	ObserveUsers(ctx context.Context) *observe.Stream[[]model.User]
	ObserveAccountTypes(ctx context.Context, userID string) *observe.Stream[[]model.AccountType]
	ObserveEntries(ctx context.Context, accountTypeID string) *observe.Stream[[]model.Entry]
	ObserveValue(ctx context.Context, accountTypeID, key string) *observe.Stream[*string]
}

// State содержит выбор и производные от него данные. Пустая строка означает "не выбрано".
type State struct {
	UserID        string
	AccountTypeID string
	Key           string

	Users        []model.User
	AccountTypes []model.AccountType
	Keys         []string
	Value        string

	// Pending: хотя бы одна активная подписка ещё не прислала первый снимок.
	Pending bool
}

type stage int

const (
	stageUsers stage = iota
	stageAccountTypes
	stageKeys
	stageValue
	stageCount
)

// топики выходных потоков
const (
	topicUsers        = "users"
	topicAccountTypes = "account_types"
	topicKeys         = "keys"
	topicValue        = "value"
	topicState        = "state"
)

var stageTopics = [stageCount]string{topicUsers, topicAccountTypes, topicKeys, topicValue}

// Resolver отслеживает путь выбора. Каждый сеттер синхронно меняет состояние,
// сразу очищает зависимые данные и переподписывается на новый источник.
// Снимки от подписок устаревшего выбора отбрасываются по номеру поколения.
type Resolver struct {
	src Source
	log *zap.SugaredLogger
	hub *observe.Hub

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	state    State
	gen      [stageCount]uint64
	pending  [stageCount]bool
	upstream [stageCount]func()
	closed   bool
}

// NewResolver создаёт Resolver с пустым выбором и подписывается на список пользователей.
func NewResolver(ctx context.Context, src Source, log *zap.SugaredLogger) *Resolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(ctx)
	r := &Resolver{
		src:    src,
		log:    log,
		hub:    observe.NewHub(log),
		ctx:    ctx,
		cancel: cancel,
	}
	r.state = emptyState()

	r.mu.Lock()
	gen := r.restart(stageUsers)
	follow(r, stageUsers, gen, src.ObserveUsers(ctx), func(s *State, users []model.User) {
		s.Users = users
	})
	r.mu.Unlock()
	return r
}

func emptyState() State {
	return State{
		Users:        []model.User{},
		AccountTypes: []model.AccountType{},
		Keys:         []string{},
	}
}

// restart закрывает текущую подписку стадии и начинает новое поколение.
// Вызывается под r.mu.
func (r *Resolver) restart(st stage) uint64 {
	if stop := r.upstream[st]; stop != nil {
		stop()
		r.upstream[st] = nil
	}
	r.pending[st] = false
	r.gen[st]++
	return r.gen[st]
}

// follow переносит снимки подписки в состояние стадии, пока поколение актуально.
// Вызывается под r.mu.
func follow[T any](r *Resolver, st stage, gen uint64, stream *observe.Stream[T], apply func(*State, T)) {
	r.upstream[st] = stream.Close
	r.pending[st] = true
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for v := range stream.Updates() {
			r.mu.Lock()
			if r.closed || r.gen[st] != gen {
				r.mu.Unlock()
				continue
			}
			apply(&r.state, v)
			r.pending[st] = false
			r.mu.Unlock()
			r.hub.Publish(stageTopics[st], topicState)
		}
	}()
}

// SelectUser выбирает пользователя и сбрасывает тип аккаунта и ключ.
func (r *Resolver) SelectUser(userID string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.state.UserID = userID
	r.clearAccountType()
	if userID != "" {
		gen := r.gen[stageAccountTypes]
		follow(r, stageAccountTypes, gen, r.src.ObserveAccountTypes(r.ctx, userID), func(s *State, types []model.AccountType) {
			s.AccountTypes = types
		})
	}
	r.mu.Unlock()
	r.log.Debugw("search: user selected", "user_id", userID)
	r.hub.Publish(topicAccountTypes, topicKeys, topicValue, topicState)
}

// SelectAccountType выбирает тип аккаунта и сбрасывает ключ. Пользователь не меняется.
func (r *Resolver) SelectAccountType(accountTypeID string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.state.AccountTypeID = accountTypeID
	r.clearKey()
	if accountTypeID != "" {
		gen := r.gen[stageKeys]
		follow(r, stageKeys, gen, r.src.ObserveEntries(r.ctx, accountTypeID), func(s *State, entries []model.Entry) {
			keys := make([]string, 0, len(entries))
			for _, e := range entries {
				keys = append(keys, e.Key)
			}
			s.Keys = keys
		})
	}
	r.mu.Unlock()
	r.log.Debugw("search: account type selected", "account_type_id", accountTypeID)
	r.hub.Publish(topicKeys, topicValue, topicState)
}

// SelectKey выбирает ключ записи.
func (r *Resolver) SelectKey(key string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.state.Key = key
	r.clearValue()
	if r.state.AccountTypeID != "" && strings.TrimSpace(key) != "" {
		gen := r.gen[stageValue]
		follow(r, stageValue, gen, r.src.ObserveValue(r.ctx, r.state.AccountTypeID, key), func(s *State, v *string) {
			if v == nil {
				s.Value = ""
				return
			}
			s.Value = *v
		})
	}
	r.mu.Unlock()
	r.hub.Publish(topicValue, topicState)
}

// Reset сбрасывает весь путь выбора. Список пользователей продолжает обновляться.
func (r *Resolver) Reset() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.state.UserID = ""
	r.clearAccountType()
	r.mu.Unlock()
	r.hub.Publish(topicAccountTypes, topicKeys, topicValue, topicState)
}

// clear* очищают выбор и производные данные ниже своей стадии. Вызываются под r.mu.
func (r *Resolver) clearAccountType() {
	r.state.AccountTypeID = ""
	r.state.AccountTypes = []model.AccountType{}
	r.restart(stageAccountTypes)
	r.clearKey()
}

func (r *Resolver) clearKey() {
	r.state.Key = ""
	r.state.Keys = []string{}
	r.restart(stageKeys)
	r.clearValue()
}

func (r *Resolver) clearValue() {
	r.state.Value = ""
	r.restart(stageValue)
}

// Snapshot возвращает копию текущего состояния.
func (r *Resolver) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resolver) snapshotLocked() State {
	s := r.state
	s.Users = append([]model.User{}, s.Users...)
	s.AccountTypes = append([]model.AccountType{}, s.AccountTypes...)
	s.Keys = append([]string{}, s.Keys...)
	for _, p := range r.pending {
		s.Pending = s.Pending || p
	}
	return s
}

// Users возвращает поток списка всех пользователей.
func (r *Resolver) Users(ctx context.Context) *observe.Stream[[]model.User] {
	return watch(ctx, r, topicUsers, func(s State) []model.User { return s.Users })
}

// AccountTypes возвращает поток типов аккаунтов выбранного пользователя; пустой, пока пользователь не выбран.
func (r *Resolver) AccountTypes(ctx context.Context) *observe.Stream[[]model.AccountType] {
	return watch(ctx, r, topicAccountTypes, func(s State) []model.AccountType { return s.AccountTypes })
}

// Keys возвращает поток ключей выбранного типа аккаунта; пустой, пока тип не выбран.
func (r *Resolver) Keys(ctx context.Context) *observe.Stream[[]string] {
	return watch(ctx, r, topicKeys, func(s State) []string { return s.Keys })
}

// Value возвращает поток значения по выбранному ключу; пустая строка, если значения нет.
func (r *Resolver) Value(ctx context.Context) *observe.Stream[string] {
	return watch(ctx, r, topicValue, func(s State) string { return s.Value })
}

// States возвращает поток полных снимков состояния.
func (r *Resolver) States(ctx context.Context) *observe.Stream[State] {
	return watch(ctx, r, topicState, func(s State) State { return s })
}

func watch[T any](ctx context.Context, r *Resolver, topic string, pick func(State) T) *observe.Stream[T] {
	return observe.Watch(ctx, r.hub, topic, func(context.Context) (T, error) {
		return pick(r.Snapshot()), nil
	}, r.log)
}

// Await ждёт, пока все активные подписки пришлют первый снимок, и возвращает состояние.
func (r *Resolver) Await(ctx context.Context) (State, error) {
	states := r.States(ctx)
	defer states.Close()
	for {
		select {
		case s, ok := <-states.Updates():
			if !ok {
				if err := ctx.Err(); err != nil {
					return State{}, err
				}
				return r.Snapshot(), nil
			}
			if !s.Pending {
				return s, nil
			}
		case <-ctx.Done():
			return State{}, ctx.Err()
		}
	}
}

// Close отписывается от источника и завершает выходные потоки.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for st := range r.upstream {
		r.restart(stage(st))
	}
	r.mu.Unlock()
	r.hub.Close()
	r.cancel()
	r.wg.Wait()
}
