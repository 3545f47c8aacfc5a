package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/courseloom/courseloom/pkg/models"
)

// AuditLogRepository stores one JSON file per course under <root>/audit,
// holding that course's audit entries in append order.
type AuditLogRepository struct {
	root string
	mu   *sync.Mutex // Shared with the course repository for atomic transitions
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(root string, mu *sync.Mutex) *AuditLogRepository {
	return &AuditLogRepository{root: root, mu: mu}
}

// ListByCourse returns all audit entries for the course, newest first.
func (ar *AuditLogRepository) ListByCourse(_ context.Context, courseID string) ([]*models.AuditEntry, error) {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	entries, err := ar.readEntries(courseID)
	if err != nil {
		return nil, err
	}

	// Stored oldest first; reverse for the newest-first contract.
	result := make([]*models.AuditEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		result = append(result, entries[i])
	}

	return result, nil
}

// append adds an entry to the course's audit file; callers hold ar.mu.
func (ar *AuditLogRepository) append(entry *models.AuditEntry) error {
	entries, err := ar.readEntries(entry.CourseID)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	err = os.MkdirAll(path.Join(ar.root, "audit"), 0750)
	if err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal audit entries for course %s: %w", entry.CourseID, err)
	}

	filePath := path.Join(ar.root, "audit", entry.CourseID+".json")

	return os.WriteFile(filePath, data, 0600)
}

func (ar *AuditLogRepository) readEntries(courseID string) ([]*models.AuditEntry, error) {
	filePath := filepath.Clean(path.Join(ar.root, "audit", courseID+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.AuditEntry{}, nil
		}

		return nil, fmt.Errorf("failed to fetch audit entries for course %s: %w", courseID, err)
	}

	var entries []*models.AuditEntry

	err = json.Unmarshal(body, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit entries for course %s: %w", courseID, err)
	}

	return entries, nil
}
