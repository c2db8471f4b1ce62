package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"trinetra.xyz/crowd-alerts/pkg/db"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

//go:generate mockgen -source=alerts.go -destination=mocks/mock_alerts.go -package=mocks

type IStore interface {
	SaveAlert(ctx context.Context, input *models.AlertInput) (*models.AlertRecord, error)
	GetAllAlerts(ctx context.Context) ([]models.AlertRecord, error)
	MarkAlertAsRead(ctx context.Context, id string) error
	MarkAllAlertsAsRead(ctx context.Context) error
	DeleteAlert(ctx context.Context, id string) error
	ClearAllAlerts(ctx context.Context) error
	SetAlertStatus(ctx context.Context, id string, status models.AlertStatus) error
	Watch(ctx context.Context) (<-chan []models.AlertRecord, error)
}

type IClassifier interface {
	Classify(assessment *models.CrowdAssessment) models.AlertPriority
	InitialStatus(priority models.AlertPriority, recentCritical int) models.AlertStatus
	EscalationWindow() time.Duration
}

type Clock func() time.Time

type IDGenerator func(now time.Time) string

// NewAlertID derives an id from the creation time; the random suffix keeps
// ids unique when several alerts land in the same millisecond.
func NewAlertID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

type Alerts struct {
	Db         *db.DB
	Store      IStore
	Classifier IClassifier
	Clock      Clock
	NewID      IDGenerator

	hub     *Hub
	hubOnce sync.Once
	// serializes snapshot reads with their delivery so watchers never see
	// an older snapshot after a newer one
	watchMu sync.Mutex
}

type ServiceOpts struct {
	Store      IStore
	Classifier IClassifier
	Clock      Clock
	NewID      IDGenerator
}

// New wires the default store and classifier over database. Close tears it
// down.
func New(database *db.DB, config ClassifierConfig) *Alerts {
	a := &Alerts{
		Db:    database,
		Clock: func() time.Time { return time.Now().UTC() },
		NewID: NewAlertID,
	}
	return a.WithServices(ServiceOpts{
		Store:      a.GetIStore(),
		Classifier: NewPriorityClassifier(config),
	})
}

func (a *Alerts) WithServices(opts ServiceOpts) *Alerts {
	if opts.Store != nil {
		a.Store = opts.Store
	}
	if opts.Classifier != nil {
		a.Classifier = opts.Classifier
	}
	if opts.Clock != nil {
		a.Clock = opts.Clock
	}
	if opts.NewID != nil {
		a.NewID = opts.NewID
	}
	return a
}

// CloseWatchers ends every watch stream. Later Watch calls fail with
// ErrStoreClosed; every other operation keeps working until Close.
func (a *Alerts) CloseWatchers() {
	a.watchHub().Close()
}

// Close ends every watch stream and releases the database.
func (a *Alerts) Close() error {
	a.CloseWatchers()
	return a.Db.Close()
}
