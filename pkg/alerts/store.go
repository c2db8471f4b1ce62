package alerts

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

func classifierLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlertCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlertClassifier),
	)
}

func storeLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlertCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlertStore),
	)
}

// asStoreError keeps typed errors intact and wraps everything else.
func asStoreError(op string, err error) error {
	if err == nil || IsValidationError(err) || IsStorageError(err) {
		return err
	}
	return newStorageError(op, err)
}

func (a *Alerts) saveAlert(ctx context.Context, input *models.AlertInput) (*models.AlertRecord, error) {
	logger := storeLogger()

	assessment, err := ValidateAlertInput(input)
	if err != nil {
		return nil, err
	}

	record := models.AlertRecord{
		Type:      common.DefaultAlertType,
		Timestamp: a.Clock().UTC(),
		Data:      *assessment,
		IsRead:    false,
	}
	if input.Type != nil {
		record.Type = strings.TrimSpace(*input.Type)
	}
	if input.Timestamp != nil {
		record.Timestamp = input.Timestamp.UTC()
	}
	if input.ID != nil {
		record.ID = strings.TrimSpace(*input.ID)
	} else {
		record.ID = a.NewID(record.Timestamp)
	}
	record.VideoMetadata = datatypes.NewJSONType(input.VideoMetadata)
	logger.Info("Received alert", zap.String("id", record.ID), zap.Reflect("data", record.Data))

	record.Priority = a.Classifier.Classify(assessment)
	classifierLogger().Info("Alert classified",
		zap.String("id", record.ID),
		zap.String("priority", string(record.Priority)),
	)

	err = a.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.AlertRecord{}).Where("id = ?", record.ID).Count(&existing).Error; err != nil {
			return newStorageError("save", err)
		}
		if existing > 0 {
			return &ValidationError{
				Err:    ErrDuplicateID,
				Issues: map[string][]string{"id": {"id " + record.ID + " already exists"}},
			}
		}

		var recentCritical int64
		if record.Priority == models.AlertPriorityCritical {
			q := tx.Model(&models.AlertRecord{}).
				Where("priority = ?", models.AlertPriorityCritical).
				Where("status IN ?", []models.AlertStatus{models.AlertStatusActive, models.AlertStatusEscalated}).
				Where("timestamp <= ?", record.Timestamp)
			if window := a.Classifier.EscalationWindow(); window > 0 {
				q = q.Where("timestamp >= ?", record.Timestamp.Add(-window))
			}
			if err := q.Count(&recentCritical).Error; err != nil {
				return newStorageError("save", err)
			}
		}
		record.Status = a.Classifier.InitialStatus(record.Priority, int(recentCritical))

		if err := tx.Create(&record).Error; err != nil {
			return newStorageError("save", err)
		}
		return nil
	})
	if err != nil {
		return nil, asStoreError("save", err)
	}

	logger.Info("Alert saved",
		zap.String("id", record.ID),
		zap.String("priority", string(record.Priority)),
		zap.String("status", string(record.Status)),
	)

	a.publish(ctx)
	return &record, nil
}

func (a *Alerts) getAllAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	alerts := []models.AlertRecord{}
	err := a.Db.Conn.WithContext(ctx).
		Order("timestamp desc").
		Order("id desc").
		Find(&alerts).Error
	if err != nil {
		return nil, newStorageError("list", err)
	}
	return alerts, nil
}

func (a *Alerts) markAlertAsRead(ctx context.Context, id string) error {
	if err := validateAlertID(id); err != nil {
		return err
	}

	result := a.Db.Conn.WithContext(ctx).
		Model(&models.AlertRecord{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	if result.Error != nil {
		return newStorageError("mark read", result.Error)
	}

	if result.RowsAffected > 0 {
		storeLogger().Info("Alert marked as read", zap.String("id", id))
		a.publish(ctx)
	}
	return nil
}

func (a *Alerts) markAllAlertsAsRead(ctx context.Context) error {
	var affected int64
	err := a.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AlertRecord{}).
			Where("is_read = ?", false).
			Update("is_read", true)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return asStoreError("mark all read", err)
	}

	if affected > 0 {
		storeLogger().Info("All alerts marked as read", zap.Int64("count", affected))
		a.publish(ctx)
	}
	return nil
}

func (a *Alerts) deleteAlert(ctx context.Context, id string) error {
	if err := validateAlertID(id); err != nil {
		return err
	}

	result := a.Db.Conn.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.AlertRecord{})
	if result.Error != nil {
		return newStorageError("delete", result.Error)
	}

	if result.RowsAffected > 0 {
		storeLogger().Info("Alert deleted", zap.String("id", id))
		a.publish(ctx)
	}
	return nil
}

func (a *Alerts) clearAllAlerts(ctx context.Context) error {
	var affected int64
	err := a.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.AlertRecord{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return asStoreError("clear", err)
	}

	if affected > 0 {
		storeLogger().Info("All alerts cleared", zap.Int64("count", affected))
		a.publish(ctx)
	}
	return nil
}

func (a *Alerts) setAlertStatus(ctx context.Context, id string, status models.AlertStatus) error {
	if err := validateAlertID(id); err != nil {
		return err
	}
	if !IsValidStatus(status) {
		return &ValidationError{
			Err:    ErrInvalidStatus,
			Issues: map[string][]string{"status": {"status must be one of " + strings.Join(models.AlertStatuses, ", ")}},
		}
	}

	changed := false
	err := a.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.AlertRecord
		result := tx.Where("id = ?", id).Limit(1).Find(&record)
		if result.Error != nil {
			return newStorageError("set status", result.Error)
		}
		if result.RowsAffected == 0 || record.Status == status {
			return nil
		}
		if !CanTransition(record.Status, status) {
			return &ValidationError{
				Err: ErrInvalidTransition,
				Issues: map[string][]string{
					"status": {"cannot move from " + string(record.Status) + " to " + string(status)},
				},
			}
		}
		if err := tx.Model(&record).Update("status", status).Error; err != nil {
			return newStorageError("set status", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return asStoreError("set status", err)
	}

	if changed {
		storeLogger().Info("Alert status changed", zap.String("id", id), zap.String("status", string(status)))
		a.publish(ctx)
	}
	return nil
}

type IStoreImpl struct {
	alerts *Alerts
}

func (is *IStoreImpl) SaveAlert(ctx context.Context, input *models.AlertInput) (*models.AlertRecord, error) {
	return is.alerts.saveAlert(ctx, input)
}

func (is *IStoreImpl) GetAllAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	return is.alerts.getAllAlerts(ctx)
}

func (is *IStoreImpl) MarkAlertAsRead(ctx context.Context, id string) error {
	return is.alerts.markAlertAsRead(ctx, id)
}

func (is *IStoreImpl) MarkAllAlertsAsRead(ctx context.Context) error {
	return is.alerts.markAllAlertsAsRead(ctx)
}

func (is *IStoreImpl) DeleteAlert(ctx context.Context, id string) error {
	return is.alerts.deleteAlert(ctx, id)
}

func (is *IStoreImpl) ClearAllAlerts(ctx context.Context) error {
	return is.alerts.clearAllAlerts(ctx)
}

func (is *IStoreImpl) SetAlertStatus(ctx context.Context, id string, status models.AlertStatus) error {
	return is.alerts.setAlertStatus(ctx, id, status)
}

func (is *IStoreImpl) Watch(ctx context.Context) (<-chan []models.AlertRecord, error) {
	return is.alerts.watch(ctx)
}

func (a *Alerts) GetIStore() IStore {
	return &IStoreImpl{alerts: a}
}
