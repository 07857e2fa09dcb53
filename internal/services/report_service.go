package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ilyakor/quizarena/internal/cache"
	apperrors "github.com/ilyakor/quizarena/internal/errors"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
)

// ReportService accepts user problem reports behind a per-user cooldown.
// The cooldown lives in memory only; a restart forgives it.
type ReportService interface {
	Submit(ctx context.Context, userID, userName, reportType, text, contextSnapshot string) (*models.Report, error)
	ListUndelivered(ctx context.Context, limit int) ([]models.Report, error)
	MarkDelivered(ctx context.Context, id string) error
}

type reportService struct {
	reports  repository.ReportRepository
	cooldown *cache.CooldownTracker
	now      func() time.Time
}

func NewReportService(reports repository.ReportRepository, cooldown *cache.CooldownTracker) ReportService {
	return &reportService{
		reports:  reports,
		cooldown: cooldown,
		now:      time.Now,
	}
}

func (s *reportService) Submit(ctx context.Context, userID, userName, reportType, text, contextSnapshot string) (*models.Report, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user_id", "must not be empty")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text", "must not be empty")
	}

	ok, remaining := s.cooldown.Try(userID)
	if !ok {
		return nil, apperrors.NewRateLimitedError(remaining)
	}

	report := models.Report{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Type:      reportType,
		Text:      text,
		Context:   contextSnapshot,
		CreatedAt: s.now(),
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithPrefix("report_service").WithField("report_id", report.ID).Info("report submitted")
	return &report, nil
}

func (s *reportService) ListUndelivered(ctx context.Context, limit int) ([]models.Report, error) {
	return s.reports.ListUndelivered(ctx, limit)
}

func (s *reportService) MarkDelivered(ctx context.Context, id string) error {
	ok, err := s.reports.MarkDelivered(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("report", id)
	}
	return nil
}
