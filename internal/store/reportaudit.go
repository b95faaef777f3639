package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/entity"
)

type reportAuditStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) ReportAudit() dependency.ReportAudit {
	return &reportAuditStore{MYSQLStore: ms}
}

// AddReportAudit appends one export audit row. Rows are write-once; there is
// deliberately no update or delete.
func (ms *reportAuditStore) AddReportAudit(ctx context.Context, audit *entity.ReportAudit) (int, error) {
	if audit.UUID == "" {
		audit.UUID = uuid.New().String()
	}
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = ms.Now()
	}
	return ExecNamedLastId(ctx, ms.DB(), `
		INSERT INTO report_audit
			(uuid, user_id, seller_id, sections, format,
			 period_from, period_to, success, error_msg, duration_ms, created_at)
		VALUES
			(:uuid, :userId, :sellerId, :sections, :format,
			 :periodFrom, :periodTo, :success, :errorMsg, :durationMs, :createdAt)
	`, map[string]any{
		"uuid":       audit.UUID,
		"userId":     audit.UserID,
		"sellerId":   audit.SellerID,
		"sections":   audit.Sections,
		"format":     audit.Format,
		"periodFrom": audit.PeriodFrom,
		"periodTo":   audit.PeriodTo,
		"success":    audit.Success,
		"errorMsg":   audit.ErrorMsg,
		"durationMs": audit.DurationMs,
		"createdAt":  audit.CreatedAt,
	})
}
