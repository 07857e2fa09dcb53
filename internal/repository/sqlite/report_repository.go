package sqlite

import (
	"context"

	"github.com/ilyakor/quizarena/internal/db"
	"github.com/ilyakor/quizarena/internal/logger"
	"github.com/ilyakor/quizarena/internal/models"
	"github.com/ilyakor/quizarena/internal/repository"
)

type reportRepository struct {
	db *db.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *db.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, report models.Report) error {
	if !r.db.Available() {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("inserting report: id=%s, user_id=%s, type=%s", report.ID, report.UserID, report.Type)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO reports (id, user_id, user_name, type, body, context, admin_delivered, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, report.ID, report.UserID, report.UserName, report.Type, report.Text, report.Context,
		report.AdminDelivered, report.CreatedAt)
	if err != nil {
		log.Error("failed to insert report: %v", err)
	}
	return err
}

func (r *reportRepository) ListUndelivered(ctx context.Context, limit int) ([]models.Report, error) {
	if !r.db.Available() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, user_name, type, body, context, admin_delivered, created_at
FROM reports
WHERE admin_delivered = 0
ORDER BY created_at ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.UserName, &rep.Type, &rep.Text,
			&rep.Context, &rep.AdminDelivered, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *reportRepository) MarkDelivered(ctx context.Context, id string) (bool, error) {
	if !r.db.Available() {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE reports SET admin_delivered = 1 WHERE id = ? AND admin_delivered = 0
`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
