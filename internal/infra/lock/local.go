package lock

import (
	"context"
	"fmt"
	"sync"
)

// LocalLocker блокировка на салон в пределах одного процесса
// Используется, когда Redis не настроен (один инстанс, тесты)
type LocalLocker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

// NewLocalLocker создает блокировку в памяти
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[int64]chan struct{})}
}

// Acquire ждет освобождения блокировки салона или отмены ctx
func (l *LocalLocker) Acquire(ctx context.Context, businessID int64) (func(), error) {
	slot := l.slot(businessID)

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: business id=%d: %v", ErrNotAcquired, businessID, ctx.Err())
	}
}

func (l *LocalLocker) slot(businessID int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[businessID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[businessID] = slot
	}
	return slot
}
