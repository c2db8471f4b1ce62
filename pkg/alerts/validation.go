package alerts

import (
	"strings"

	z "github.com/Oudwins/zog"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

var crowdAssessmentSchema = z.Struct(z.Shape{
	"CrowdLevel":           z.Ptr(z.String().Required().OneOf(models.CrowdLevels)).NotNil(),
	"EstimatedPeople":      z.Ptr(z.Int().GTE(0)).NotNil(),
	"PoliceRequired":       z.Ptr(z.Bool()).NotNil(),
	"PoliceCount":          z.Ptr(z.Int().GTE(0)).NotNil(),
	"MedicalRequired":      z.Ptr(z.Bool()).NotNil(),
	"MedicalStaffCount":    z.Ptr(z.Int().GTE(0)).NotNil(),
	"ChokepointsDetected":  z.Ptr(z.Bool()).NotNil(),
	"EmergencyAccessClear": z.Ptr(z.Bool()).NotNil(),
	"HarmLikelihood":       z.Ptr(z.String().Required().Min(1)).NotNil(),
})

var videoMetadataSchema = z.Struct(z.Shape{
	"Size":     z.Int().GTE(0),
	"Duration": z.Float64().GTE(0),
})

func issuesFromMap(prefix string, issueMap z.ZogIssueMap, into map[string][]string) {
	for field, issues := range issueMap {
		if strings.HasPrefix(field, "$") {
			continue
		}
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		for _, issue := range issues {
			into[key] = append(into[key], issue.Message)
		}
	}
}

// ValidateAlertInput checks the ingest payload and returns the strict
// assessment it describes.
func ValidateAlertInput(input *models.AlertInput) (*models.CrowdAssessment, error) {
	if input == nil {
		return nil, &ValidationError{Issues: map[string][]string{"$root": {"payload is required"}}}
	}

	issues := map[string][]string{}

	if input.ID != nil && strings.TrimSpace(*input.ID) == "" {
		issues["id"] = append(issues["id"], "id must not be empty when provided")
	}
	if input.Type != nil && strings.TrimSpace(*input.Type) == "" {
		issues["type"] = append(issues["type"], "type must not be empty when provided")
	}
	if input.Timestamp != nil && input.Timestamp.IsZero() {
		issues["timestamp"] = append(issues["timestamp"], "timestamp must not be zero when provided")
	}

	if input.Data == nil {
		issues["data"] = append(issues["data"], "data is required")
	} else {
		if issueMap := crowdAssessmentSchema.Validate(input.Data); issueMap != nil {
			issuesFromMap("data", issueMap, issues)
		}
		if input.Data.HarmLikelihood != nil && strings.TrimSpace(*input.Data.HarmLikelihood) == "" {
			issues["data.HarmLikelihood"] = append(issues["data.HarmLikelihood"], "harm_likelihood must not be blank")
		}
	}

	if input.VideoMetadata != nil {
		if issueMap := videoMetadataSchema.Validate(input.VideoMetadata); issueMap != nil {
			issuesFromMap("videoMetadata", issueMap, issues)
		}
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	return assessmentFromInput(input.Data), nil
}

func assessmentFromInput(in *models.CrowdAssessmentInput) *models.CrowdAssessment {
	a := &models.CrowdAssessment{
		CrowdLevel:           models.CrowdLevel(*in.CrowdLevel),
		EstimatedPeople:      *in.EstimatedPeople,
		PoliceRequired:       *in.PoliceRequired,
		PoliceCount:          *in.PoliceCount,
		MedicalRequired:      *in.MedicalRequired,
		MedicalStaffCount:    *in.MedicalStaffCount,
		Activities:           common.UniqueTrimmed(in.Activities),
		ChokepointsDetected:  *in.ChokepointsDetected,
		EmergencyAccessClear: *in.EmergencyAccessClear,
		HarmLikelihood:       strings.TrimSpace(*in.HarmLikelihood),
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	return a
}

var alertIDSchema = z.String().Min(1).Required()

func validateAlertID(id string) error {
	if issues := alertIDSchema.Validate(&id); issues != nil {
		return &ValidationError{Issues: map[string][]string{
			"id": common.Mapper(issues, func(i *z.ZogIssue) string { return i.Message }),
		}}
	}
	return nil
}
