package audit

import (
	"context"
	"time"

	common_models "go-spear/internal/common/models"

	"go.uber.org/zap"
)

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error
	ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	repo   AuditRepository
	logger *zap.Logger
}

func NewAuditService(repo AuditRepository, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	entry := &common_models.AuditLog{
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		Changes:   changes,
		Timestamp: time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		// Audit failures must never break the calling mutation
		s.logger.Warn("audit write failed", zap.String("module", module), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return s.repo.List(ctx, filters, page, limit)
}
