// Package file provides file-based persistence for courses, audit entries and
// version snapshots. Intended for development and single-instance deployments.
package file

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/courseloom/courseloom/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface on the file system.
type Persistence struct {
	root        string
	courseRepo  *CourseRepository
	auditRepo   *AuditLogRepository
	versionRepo *VersionRepository
}

// NewPersistence creates file-backed persistence rooted at the given directory.
// Accepts a plain path or a file:// URL.
func NewPersistence(root string) persistence.Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	// One mutex spans courses and the audit log so ApplyTransition can commit
	// both as a unit.
	mu := &sync.Mutex{}
	auditRepo := NewAuditLogRepository(cleanRoot, mu)

	return &Persistence{
		root:        cleanRoot,
		courseRepo:  NewCourseRepository(cleanRoot, mu, auditRepo),
		auditRepo:   auditRepo,
		versionRepo: NewVersionRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) Courses() persistence.CourseRepository {
	return fp.courseRepo
}

func (fp *Persistence) AuditLog() persistence.AuditLogRepository {
	return fp.auditRepo
}

func (fp *Persistence) Versions() persistence.VersionRepository {
	return fp.versionRepo
}
