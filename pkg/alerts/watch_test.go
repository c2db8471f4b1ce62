package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/db"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

func receive(t *testing.T, ch <-chan []models.AlertRecord) []models.AlertRecord {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "watch channel closed")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}

func TestWatch_InitialSnapshotAndUpdates(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, alertsObj, _ := GetMockAlertsWithMemorySqliteDialector(t, DefaultClassifierConfig(), false)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	existing, err := alertsObj.Store.SaveAlert(ctx, alertInput())
	require.NoError(t, err)

	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)

	initial := receive(t, ch)
	require.Len(t, initial, 1)
	assert.Equal(t, existing.ID, initial[0].ID)

	added, err := alertsObj.Store.SaveAlert(ctx, alertInput(withCrowdLevel("high")))
	require.NoError(t, err)
	afterSave := receive(t, ch)
	assert.Len(t, afterSave, 2)

	require.NoError(t, alertsObj.Store.MarkAlertAsRead(ctx, added.ID))
	afterRead := receive(t, ch)
	for _, alert := range afterRead {
		assert.Equal(t, alert.ID == added.ID, alert.IsRead)
	}

	require.NoError(t, alertsObj.Store.ClearAllAlerts(ctx))
	assert.Empty(t, receive(t, ch))
}

func TestWatch_NoopMutationsDoNotPublish(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, alertsObj, _ := GetMockAlertsWithMemorySqliteDialector(t, DefaultClassifierConfig(), false)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)
	assert.Empty(t, receive(t, ch))

	require.NoError(t, alertsObj.Store.DeleteAlert(ctx, "missing"))
	require.NoError(t, alertsObj.Store.MarkAllAlertsAsRead(ctx))

	select {
	case snapshot := <-ch:
		t.Fatalf("unexpected snapshot %v", snapshot)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatch_SlowReaderGetsLatest(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, alertsObj, _ := GetMockAlertsWithMemorySqliteDialector(t, DefaultClassifierConfig(), false)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)

	for _i := 0; _i < 5; _i++ {
		_, err := alertsObj.Store.SaveAlert(ctx, alertInput())
		require.NoError(t, err)
	}

	assert.Len(t, receive(t, ch), 5)
}

func TestWatch_CancelClosesChannel(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, alertsObj, _ := GetMockAlertsWithMemorySqliteDialector(t, DefaultClassifierConfig(), false)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)
	receive(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatch_CloseEndsStreams(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, alertsObj, _ := GetMockAlertsWithMemorySqliteDialector(t, DefaultClassifierConfig(), false)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)
	receive(t, ch)

	require.NoError(t, alertsObj.Close())

	_, ok := <-ch
	assert.False(t, ok)

	_, err = alertsObj.Store.Watch(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestWatch_CloseWatchersKeepsStore(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, alertsObj, _ := GetMockAlertsWithMemorySqliteDialector(t, DefaultClassifierConfig(), false)
	defer ctrl.Finish()

	// never cancelled: only closing the watchers ends this stream
	ctx := context.Background()
	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)
	receive(t, ch)

	alertsObj.CloseWatchers()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after CloseWatchers")
	}
	assert.False(t, alertsObj.watchHub().HasSubscribers())

	_, err = alertsObj.Store.Watch(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)

	// the database is still open for in-flight requests
	saved, err := alertsObj.Store.SaveAlert(ctx, alertInput())
	require.NoError(t, err)
	records, err := alertsObj.Store.GetAllAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, saved.ID, records[0].ID)
}

func TestAlerts_StructLiteral(t *testing.T) {
	common.SetTestLoggerNop()

	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)

	alertsObj := &Alerts{
		Db:    dbInstance,
		Clock: fixedClock(testNow, time.Second),
		NewID: NewAlertID,
	}
	alertsObj.WithServices(ServiceOpts{
		Store:      alertsObj.GetIStore(),
		Classifier: NewPriorityClassifier(DefaultClassifierConfig()),
	})
	t.Cleanup(func() { _ = alertsObj.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = alertsObj.Store.SaveAlert(ctx, alertInput())
	require.NoError(t, err)

	ch, err := alertsObj.Store.Watch(ctx)
	require.NoError(t, err)
	assert.Len(t, receive(t, ch), 1)

	_, err = alertsObj.Store.SaveAlert(ctx, alertInput())
	require.NoError(t, err)
	assert.Len(t, receive(t, ch), 2)
}

func TestHub_CloseSignalsDone(t *testing.T) {
	hub := NewHub()
	_, ch, ok := hub.Subscribe()
	require.True(t, ok)

	select {
	case <-hub.Done():
		t.Fatal("done before close")
	default:
	}

	hub.Close()
	hub.Close()

	_, ok = <-ch
	assert.False(t, ok)
	select {
	case <-hub.Done():
	default:
		t.Fatal("done not closed")
	}

	_, _, ok = hub.Subscribe()
	assert.False(t, ok)
}

func TestHub_PublishReplacesPending(t *testing.T) {
	hub := NewHub()
	id, ch, ok := hub.Subscribe()
	require.True(t, ok)

	hub.Publish([]models.AlertRecord{{ID: "a"}})
	hub.Publish([]models.AlertRecord{{ID: "a"}, {ID: "b"}})

	snapshot := <-ch
	assert.Len(t, snapshot, 2)

	hub.Unsubscribe(id)
	_, ok = <-ch
	assert.False(t, ok)
	assert.False(t, hub.HasSubscribers())

	// unsubscribing twice is harmless
	hub.Unsubscribe(id)
}

func TestHub_SnapshotsAreCopies(t *testing.T) {
	hub := NewHub()
	_, ch, _ := hub.Subscribe()

	records := []models.AlertRecord{{ID: "a", Data: models.CrowdAssessment{Activities: []string{"x"}}}}
	hub.Publish(records)
	records[0].ID = "mutated"
	records[0].Data.Activities[0] = "y"

	snapshot := <-ch
	assert.Equal(t, "a", snapshot[0].ID)
	assert.Equal(t, "x", snapshot[0].Data.Activities[0])
}
