package models

import (
	"time"

	"gorm.io/datatypes"
)

type CrowdLevel string

const (
	CrowdLevelLow      CrowdLevel = "low"
	CrowdLevelMedium   CrowdLevel = "medium"
	CrowdLevelHigh     CrowdLevel = "high"
	CrowdLevelVeryHigh CrowdLevel = "very_high"
)

var CrowdLevels = []string{
	string(CrowdLevelLow),
	string(CrowdLevelMedium),
	string(CrowdLevelHigh),
	string(CrowdLevelVeryHigh),
}

type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "low"
	AlertPriorityMedium   AlertPriority = "medium"
	AlertPriorityHigh     AlertPriority = "high"
	AlertPriorityCritical AlertPriority = "critical"
)

// Rank orders priorities for sorting; unknown values rank below low.
func (p AlertPriority) Rank() int {
	switch p {
	case AlertPriorityCritical:
		return 4
	case AlertPriorityHigh:
		return 3
	case AlertPriorityMedium:
		return 2
	case AlertPriorityLow:
		return 1
	}
	return 0
}

type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusResolved  AlertStatus = "resolved"
	AlertStatusEscalated AlertStatus = "escalated"
)

var AlertStatuses = []string{
	string(AlertStatusActive),
	string(AlertStatusResolved),
	string(AlertStatusEscalated),
}

// CrowdAssessment is the validated payload produced by the external video
// analysis service.
type CrowdAssessment struct {
	CrowdLevel           CrowdLevel                  `json:"crowd_level" gorm:"type:varchar(16);check:data_crowd_level IN ('low','medium','high','very_high')"`
	EstimatedPeople      int                         `json:"estimated_people"`
	PoliceRequired       bool                        `json:"police_required"`
	PoliceCount          int                         `json:"police_count"`
	MedicalRequired      bool                        `json:"medical_required"`
	MedicalStaffCount    int                         `json:"medical_staff_count"`
	Activities           datatypes.JSONSlice[string] `json:"activities"`
	ChokepointsDetected  bool                        `json:"chokepoints_detected"`
	EmergencyAccessClear bool                        `json:"emergency_access_clear"`
	HarmLikelihood       string                      `json:"harm_likelihood"`
	Notes                string                      `json:"notes,omitempty"`
}

type VideoMetadata struct {
	Filename string  `json:"filename,omitempty"`
	Size     int     `json:"size,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Location string  `json:"location,omitempty"`
	Context  string  `json:"context,omitempty"`
}

type AlertRecord struct {
	ID            string                              `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Type          string                              `json:"type" gorm:"type:varchar(32);not null"`
	Timestamp     time.Time                           `json:"timestamp" gorm:"index;not null"`
	Data          CrowdAssessment                     `json:"data" gorm:"embedded;embeddedPrefix:data_"`
	IsRead        bool                                `json:"isRead" gorm:"index;not null;default:false"`
	Priority      AlertPriority                       `json:"priority" gorm:"type:varchar(16);index;check:priority IN ('low','medium','high','critical')"`
	Status        AlertStatus                         `json:"status" gorm:"type:varchar(16);index;check:status IN ('active','resolved','escalated')"`
	VideoMetadata datatypes.JSONType[*VideoMetadata] `json:"videoMetadata"`
}

// CrowdAssessmentInput is the ingest shape of a CrowdAssessment. Pointer
// fields keep "absent" apart from the zero value so validation can reject
// incomplete payloads.
type CrowdAssessmentInput struct {
	CrowdLevel           *string  `json:"crowd_level"`
	EstimatedPeople      *int     `json:"estimated_people"`
	PoliceRequired       *bool    `json:"police_required"`
	PoliceCount          *int     `json:"police_count"`
	MedicalRequired      *bool    `json:"medical_required"`
	MedicalStaffCount    *int     `json:"medical_staff_count"`
	Activities           []string `json:"activities"`
	ChokepointsDetected  *bool    `json:"chokepoints_detected"`
	EmergencyAccessClear *bool    `json:"emergency_access_clear"`
	HarmLikelihood       *string  `json:"harm_likelihood"`
	Notes                *string  `json:"notes"`
}

type AlertInput struct {
	ID            *string               `json:"id"`
	Type          *string               `json:"type"`
	Timestamp     *time.Time            `json:"timestamp"`
	Data          *CrowdAssessmentInput `json:"data"`
	VideoMetadata *VideoMetadata        `json:"videoMetadata"`
}
