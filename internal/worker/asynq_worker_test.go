package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/meiduo-next/mall/internal/cart"
	"github.com/meiduo-next/mall/internal/provider"
	"github.com/meiduo-next/mall/internal/queue"

	"github.com/hibiken/asynq"
)

type fakeCleanStore struct {
	removed map[uint][]uint
	failErr error
}

func newFakeCleanStore() *fakeCleanStore {
	return &fakeCleanStore{removed: make(map[uint][]uint)}
}

func (s *fakeCleanStore) GetAll(ctx context.Context, userID uint) ([]cart.Entry, error) {
	return nil, nil
}

func (s *fakeCleanStore) GetSelected(ctx context.Context, userID uint) (map[uint]int, error) {
	return map[uint]int{}, nil
}

func (s *fakeCleanStore) SetEntry(ctx context.Context, userID, skuID uint, count int, selected bool) error {
	return nil
}

func (s *fakeCleanStore) RemoveEntries(ctx context.Context, userID uint, skuIDs []uint) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.removed[userID] = append(s.removed[userID], skuIDs...)
	return nil
}

func (s *fakeCleanStore) SelectAll(ctx context.Context, userID uint, selected bool) error {
	return nil
}

func (s *fakeCleanStore) Merge(ctx context.Context, userID uint, counts map[uint]int, selected, unselected []uint) error {
	return nil
}

func newCartCleanTask(t *testing.T, payload queue.CartCleanPayload) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(queue.TaskCartClean, body)
}

func TestHandleCartCleanRemovesEntries(t *testing.T) {
	store := newFakeCleanStore()
	consumer := NewConsumer(&provider.Container{CartStore: store})

	task := newCartCleanTask(t, queue.CartCleanPayload{UserID: 1, SKUIDs: []uint{3, 7}})
	if err := consumer.handleCartClean(context.Background(), task); err != nil {
		t.Fatalf("handleCartClean error: %v", err)
	}
	if got := store.removed[1]; len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Fatalf("unexpected removed entries: %v", got)
	}
}

func TestHandleCartCleanInvalidPayloadSkipped(t *testing.T) {
	store := newFakeCleanStore()
	consumer := NewConsumer(&provider.Container{CartStore: store})

	// 空 payload 直接丢弃，不交给队列重试
	task := newCartCleanTask(t, queue.CartCleanPayload{UserID: 0, SKUIDs: nil})
	if err := consumer.handleCartClean(context.Background(), task); err != nil {
		t.Fatalf("invalid payload should be dropped, got: %v", err)
	}
	if len(store.removed) != 0 {
		t.Fatalf("expected no removal, got %v", store.removed)
	}
}

func TestHandleCartCleanMalformedBody(t *testing.T) {
	consumer := NewConsumer(&provider.Container{CartStore: newFakeCleanStore()})

	task := asynq.NewTask(queue.TaskCartClean, []byte("{not json"))
	if err := consumer.handleCartClean(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleCartCleanStoreFailureRetried(t *testing.T) {
	store := newFakeCleanStore()
	store.failErr = errors.New("redis down")
	consumer := NewConsumer(&provider.Container{CartStore: store})

	task := newCartCleanTask(t, queue.CartCleanPayload{UserID: 1, SKUIDs: []uint{3}})
	if err := consumer.handleCartClean(context.Background(), task); !errors.Is(err, store.failErr) {
		t.Fatalf("expected store error to propagate, got: %v", err)
	}
}

func TestHandleCartCleanMissingStoreSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := newCartCleanTask(t, queue.CartCleanPayload{UserID: 1, SKUIDs: []uint{3}})
	if err := consumer.handleCartClean(context.Background(), task); err != nil {
		t.Fatalf("missing store should not error, got: %v", err)
	}
}
