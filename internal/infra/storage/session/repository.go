// Package session хранит сессии бронирования в памяти процесса.
//
// Сессия - это состояние одного открытого диалога планирования. Она обязана
// умирать вместе с диалогом, поэтому хранилище намеренно не персистентное:
// map под RWMutex плюс фоновая чистка истекших записей.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Repository in-memory репозиторий сессий бронирования
type Repository struct {
	mu           sync.RWMutex
	sessions     map[string]*domain.BookingSession
	timeProvider TimeProvider
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository() *Repository {
	return &Repository{
		sessions:     make(map[string]*domain.BookingSession),
		timeProvider: &RealTimeProvider{},
	}
}

// Create сохраняет новую сессию
// Выставляет Version=1 и таймстемпы; ID и ExpiresAt назначает вызывающий слой
func (r *Repository) Create(_ context.Context, s *domain.BookingSession) (*domain.BookingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; ok {
		return nil, ErrSessionAlreadyExists
	}

	now := r.timeProvider.Now()
	stored := *s
	stored.Version = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.sessions[s.ID] = &stored

	result := stored
	return &result, nil
}

// GetByID возвращает копию сессии
// Истекшая сессия неотличима от отсутствующей (чистку делает воркер)
func (r *Repository) GetByID(_ context.Context, id string) (*domain.BookingSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.sessions[id]
	if !ok || stored.IsExpired(r.timeProvider.Now()) {
		return nil, ErrSessionNotFound
	}

	result := *stored
	return &result, nil
}

// Update сохраняет мутацию сессии с оптимистической проверкой версии
//
// Мутация принимается, только если ее Version совпадает с хранимой: результат,
// пришедший после более новой мутации, отбрасывается с ErrVersionConflict и
// не затирает свежий выбор пользователя
func (r *Repository) Update(_ context.Context, s *domain.BookingSession) (*domain.BookingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[s.ID]
	if !ok || stored.IsExpired(r.timeProvider.Now()) {
		return nil, ErrSessionNotFound
	}

	if stored.Version != s.Version {
		return nil, ErrVersionConflict
	}

	updated := *s
	updated.Version = stored.Version + 1
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.timeProvider.Now()

	r.sessions[s.ID] = &updated

	result := updated
	return &result, nil
}

// Delete удаляет сессию (закрытие диалога)
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	delete(r.sessions, id)
	return nil
}

// Count возвращает количество сессий в хранилище (включая истекшие до чистки)
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// DeleteExpired удаляет истекшие сессии и возвращает их количество
func (r *Repository) DeleteExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.timeProvider.Now()
	removed := 0
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			removed++
		}
	}

	return removed
}

// StartExpirationWorker запускает фоновую чистку истекших сессий
// onSweep (опционально) получает размер хранилища после каждой чистки -
// используется для публикации метрики активных сессий
func (r *Repository) StartExpirationWorker(interval time.Duration, stopCh <-chan struct{}, onSweep func(active int)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.DeleteExpired()
				if onSweep != nil {
					onSweep(r.Count())
				}
			case <-stopCh:
				return
			}
		}
	}()
}
