package alerts

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

// Hub fans alert snapshots out to watchers. Every subscriber channel has a
// single slot: a slow reader only ever sees the newest snapshot.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan []models.AlertRecord
	next   uint64
	closed bool
	done   chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]chan []models.AlertRecord),
		done: make(chan struct{}),
	}
}

// Done is closed once the hub is closed.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Subscribe() (uint64, <-chan []models.AlertRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, nil, false
	}
	h.next++
	ch := make(chan []models.AlertRecord, 1)
	h.subs[h.next] = ch
	return h.next, ch, true
}

func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) HasSubscribers() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs) > 0
}

func (h *Hub) Publish(snapshot []models.AlertRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		offer(ch, snapshot)
	}
}

// Send delivers a snapshot to one subscriber only.
func (h *Hub) Send(id uint64, snapshot []models.AlertRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		offer(ch, snapshot)
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// offer replaces whatever is pending in ch with snapshot. Callers hold h.mu,
// so no other sender races for the slot.
func offer(ch chan []models.AlertRecord, snapshot []models.AlertRecord) {
	select {
	case <-ch:
	default:
	}
	ch <- cloneRecords(snapshot)
}

func cloneRecords(records []models.AlertRecord) []models.AlertRecord {
	out := make([]models.AlertRecord, len(records))
	copy(out, records)
	for i := range out {
		activities := make([]string, len(records[i].Data.Activities))
		copy(activities, records[i].Data.Activities)
		out[i].Data.Activities = activities
	}
	return out
}

func watchLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlertCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlertWatch),
	)
}

// watchHub returns the hub, creating it on first use.
func (a *Alerts) watchHub() *Hub {
	a.hubOnce.Do(func() {
		if a.hub == nil {
			a.hub = NewHub()
		}
	})
	return a.hub
}

// watch streams the current alert list, then a fresh list after every change.
// The channel closes when ctx is done or watchers are closed.
func (a *Alerts) watch(ctx context.Context) (<-chan []models.AlertRecord, error) {
	hub := a.watchHub()
	id, ch, ok := hub.Subscribe()
	if !ok {
		return nil, ErrStoreClosed
	}

	a.watchMu.Lock()
	snapshot, err := a.getAllAlerts(ctx)
	if err == nil {
		hub.Send(id, snapshot)
	}
	a.watchMu.Unlock()

	if err != nil {
		hub.Unsubscribe(id)
		return nil, err
	}

	watchLogger().Info("Watcher subscribed", zap.Uint64("watcher", id))

	go func() {
		select {
		case <-ctx.Done():
			hub.Unsubscribe(id)
		case <-hub.Done():
		}
		watchLogger().Info("Watcher unsubscribed", zap.Uint64("watcher", id))
	}()

	return ch, nil
}

// publish pushes a fresh snapshot to watchers after a committed mutation.
// A failed read is logged; the mutation itself already succeeded.
func (a *Alerts) publish(ctx context.Context) {
	hub := a.watchHub()
	if !hub.HasSubscribers() {
		return
	}

	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	snapshot, err := a.getAllAlerts(context.WithoutCancel(ctx))
	if err != nil {
		watchLogger().Warn("Failed to load alert snapshot", zap.Error(err))
		return
	}
	hub.Publish(snapshot)
}
