package alerts

import (
	"sort"

	"trinetra.xyz/crowd-alerts/pkg/models"
)

// The store returns alerts newest first; these helpers give list views the
// other orders they need without touching stored state.

func SortByRecency(alerts []models.AlertRecord) []models.AlertRecord {
	out := cloneRecords(alerts)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// SortByPriority orders by priority, most urgent first, then by recency.
func SortByPriority(alerts []models.AlertRecord) []models.AlertRecord {
	out := SortByRecency(alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

func FilterUnread(alerts []models.AlertRecord) []models.AlertRecord {
	out := make([]models.AlertRecord, 0, len(alerts))
	for _, alert := range alerts {
		if !alert.IsRead {
			out = append(out, alert)
		}
	}
	return out
}

func CountUnread(alerts []models.AlertRecord) int {
	count := 0
	for _, alert := range alerts {
		if !alert.IsRead {
			count++
		}
	}
	return count
}
