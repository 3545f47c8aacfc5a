package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/courseloom/courseloom/pkg/models"
)

// VersionRepository stores one JSON file per snapshot under
// <root>/versions/<courseID>.
type VersionRepository struct {
	root string
	mu   sync.Mutex // Serializes number assignment per process
}

// NewVersionRepository creates a new version repository.
func NewVersionRepository(root string) *VersionRepository {
	return &VersionRepository{root: root}
}

// Save persists the snapshot, assigning the next version number for its course.
func (vr *VersionRepository) Save(_ context.Context, version *models.CourseVersion) error {
	vr.mu.Lock()
	defer vr.mu.Unlock()

	existing, err := vr.readAll(version.CourseID)
	if err != nil {
		return err
	}

	next := 1
	for _, v := range existing {
		if v.VersionNumber >= next {
			next = v.VersionNumber + 1
		}
	}

	version.VersionNumber = next

	dir := path.Join(vr.root, "versions", version.CourseID)

	err = os.MkdirAll(dir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create versions directory: %w", err)
	}

	data, err := json.MarshalIndent(version, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal version %s: %w", version.ID, err)
	}

	return os.WriteFile(path.Join(dir, version.ID+".json"), data, 0600)
}

// GetByID scans all course directories for the snapshot.
func (vr *VersionRepository) GetByID(_ context.Context, versionID string) (*models.CourseVersion, error) {
	root := os.DirFS(path.Join(vr.root, "versions"))

	matches, err := fs.Glob(root, path.Join("*", versionID+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to locate version %s: %w", versionID, err)
	}

	if len(matches) == 0 {
		return nil, nil
	}

	return vr.readVersion(path.Join(vr.root, "versions", matches[0]))
}

// ListByCourse returns all snapshots for the course, newest first by version number.
func (vr *VersionRepository) ListByCourse(_ context.Context, courseID string) ([]*models.CourseVersion, error) {
	vr.mu.Lock()
	defer vr.mu.Unlock()

	versions, err := vr.readAll(courseID)
	if err != nil {
		return nil, err
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNumber > versions[j].VersionNumber
	})

	return versions, nil
}

// readAll loads every snapshot for a course; callers hold vr.mu.
func (vr *VersionRepository) readAll(courseID string) ([]*models.CourseVersion, error) {
	dir := path.Join(vr.root, "versions", courseID)

	root := os.DirFS(dir)

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list version files for course %s: %w", courseID, err)
	}

	versions := make([]*models.CourseVersion, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		version, err := vr.readVersion(path.Join(dir, file))
		if err != nil {
			return nil, err
		}

		versions = append(versions, version)
	}

	return versions, nil
}

func (vr *VersionRepository) readVersion(filePath string) (*models.CourseVersion, error) {
	body, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version file %s: %w", filePath, err)
	}

	var version models.CourseVersion

	err = json.Unmarshal(body, &version)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal version file %s: %w", filePath, err)
	}

	return &version, nil
}
