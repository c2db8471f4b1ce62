package alerts

import (
	"strings"
	"time"

	"trinetra.xyz/crowd-alerts/pkg/models"
)

const DefaultPoliceCountThreshold = 2

// ClassifierConfig tunes PriorityClassifier. EscalateAfterCritical = 0
// disables automatic escalation.
type ClassifierConfig struct {
	PoliceCountThreshold  int
	EscalateAfterCritical int
	EscalateWindow        time.Duration
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		PoliceCountThreshold: DefaultPoliceCountThreshold,
	}
}

var highRiskHarmLabels = map[string]struct{}{
	"high":      {},
	"very_high": {},
	"critical":  {},
	"severe":    {},
	"extreme":   {},
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.NewReplacer("-", "_", " ", "_").Replace(label)
	return label
}

func IsHighRiskHarm(label string) bool {
	_, ok := highRiskHarmLabels[normalizeLabel(label)]
	return ok
}

type PriorityClassifier struct {
	config ClassifierConfig
}

func NewPriorityClassifier(config ClassifierConfig) *PriorityClassifier {
	return &PriorityClassifier{config: config}
}

// Classify is a pure function of the assessment. Rules are checked from the
// most to the least urgent level and the first match wins.
func (c *PriorityClassifier) Classify(a *models.CrowdAssessment) models.AlertPriority {
	switch {
	case a.CrowdLevel == models.CrowdLevelVeryHigh,
		!a.EmergencyAccessClear,
		a.ChokepointsDetected && IsHighRiskHarm(a.HarmLikelihood):
		return models.AlertPriorityCritical
	case a.CrowdLevel == models.CrowdLevelHigh,
		a.PoliceRequired && a.PoliceCount > c.config.PoliceCountThreshold:
		return models.AlertPriorityHigh
	case a.CrowdLevel == models.CrowdLevelMedium,
		a.MedicalRequired:
		return models.AlertPriorityMedium
	}
	return models.AlertPriorityLow
}

// InitialStatus picks the status of a freshly saved alert. recentCritical is
// the number of other open critical alerts inside the escalation window.
func (c *PriorityClassifier) InitialStatus(priority models.AlertPriority, recentCritical int) models.AlertStatus {
	if c.config.EscalateAfterCritical > 0 &&
		priority == models.AlertPriorityCritical &&
		recentCritical+1 >= c.config.EscalateAfterCritical {
		return models.AlertStatusEscalated
	}
	return models.AlertStatusActive
}

func (c *PriorityClassifier) EscalationWindow() time.Duration {
	if c.config.EscalateAfterCritical <= 0 {
		return 0
	}
	return c.config.EscalateWindow
}

// CanTransition is the status state machine. Re-applying the current status
// is allowed and leaves the record unchanged.
func CanTransition(from, to models.AlertStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.AlertStatusActive:
		return to == models.AlertStatusResolved || to == models.AlertStatusEscalated
	case models.AlertStatusEscalated:
		return to == models.AlertStatusResolved
	}
	return false
}

func IsValidStatus(status models.AlertStatus) bool {
	switch status {
	case models.AlertStatusActive, models.AlertStatusResolved, models.AlertStatusEscalated:
		return true
	}
	return false
}
