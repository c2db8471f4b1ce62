package alerts

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"trinetra.xyz/crowd-alerts/pkg/alerts/mocks"
	"trinetra.xyz/crowd-alerts/pkg/db"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

var testNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func GetMockAlertsWithMemorySqliteDialector(t *testing.T, config ClassifierConfig, useMockIClassifier bool) (
	*gomock.Controller,
	*Alerts,
	*mocks.MockIClassifier,
) {
	ctrl := gomock.NewController(t)

	mockIClassifier := mocks.NewMockIClassifier(ctrl)

	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)

	alertsInstance := New(dbInstance, config)
	t.Cleanup(func() { _ = alertsInstance.Close() })

	if useMockIClassifier {
		alertsInstance.WithServices(ServiceOpts{Classifier: mockIClassifier})
	}

	return ctrl, alertsInstance, mockIClassifier
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) Clock {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func ptr[T any](v T) *T {
	return &v
}

// assessment builds a complete, calm payload; opts tweak it per test.
func assessment(opts ...func(*models.CrowdAssessmentInput)) *models.CrowdAssessmentInput {
	in := &models.CrowdAssessmentInput{
		CrowdLevel:           ptr("low"),
		EstimatedPeople:      ptr(40),
		PoliceRequired:       ptr(false),
		PoliceCount:          ptr(0),
		MedicalRequired:      ptr(false),
		MedicalStaffCount:    ptr(0),
		Activities:           []string{"walking"},
		ChokepointsDetected:  ptr(false),
		EmergencyAccessClear: ptr(true),
		HarmLikelihood:       ptr("low"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func alertInput(opts ...func(*models.CrowdAssessmentInput)) *models.AlertInput {
	return &models.AlertInput{Data: assessment(opts...)}
}

func withCrowdLevel(level string) func(*models.CrowdAssessmentInput) {
	return func(in *models.CrowdAssessmentInput) { in.CrowdLevel = ptr(level) }
}

func withEmergencyAccessClear(clear bool) func(*models.CrowdAssessmentInput) {
	return func(in *models.CrowdAssessmentInput) { in.EmergencyAccessClear = ptr(clear) }
}
