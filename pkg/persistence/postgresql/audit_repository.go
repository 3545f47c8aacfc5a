package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/courseloom/courseloom/pkg/models"
)

// AuditLogRepository reads the append-only transition history. Rows are only
// ever written by CourseRepository.ApplyTransition.
type AuditLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(db *sql.DB, logger *slog.Logger) *AuditLogRepository {
	return &AuditLogRepository{db: db, logger: logger}
}

// ListByCourse returns all audit entries for the course, newest first.
func (ar *AuditLogRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, course_id, actor_id, from_status, to_status, reason,
			   metadata, ip_address, user_agent, created_at
		FROM course_audit_log
		WHERE course_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := ar.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for course %s: %w", courseID, err)
	}
	defer rows.Close()

	entries := make([]*models.AuditEntry, 0)

	for rows.Next() {
		var (
			entry        models.AuditEntry
			metadataJSON []byte
		)

		err := rows.Scan(
			&entry.ID,
			&entry.CourseID,
			&entry.ActorID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Reason,
			&metadataJSON,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit metadata: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}
