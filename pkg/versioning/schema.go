package versioning

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// curriculumSchema is the structural contract for a curriculum snapshot:
// ordered chapters, each with ordered lessons and their metadata. Snapshots
// are validated against it before persisting and before restoring, so a
// corrupted snapshot is rejected instead of written back onto a live course.
const curriculumSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "position"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1},
			"position": {"type": "integer", "minimum": 0},
			"lessons": {
				"type": ["array", "null"],
				"items": {
					"type": "object",
					"required": ["id", "title", "position"],
					"properties": {
						"id": {"type": "string", "minLength": 1},
						"title": {"type": "string", "minLength": 1},
						"position": {"type": "integer", "minimum": 0},
						"duration_minutes": {"type": "integer", "minimum": 0},
						"type": {"type": "string"},
						"is_preview": {"type": "boolean"}
					}
				}
			}
		}
	}
}`

// validateCurriculumSnapshot checks a serialized curriculum tree against the
// snapshot schema.
func validateCurriculumSnapshot(snapshot []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(curriculumSchema)
	documentLoader := gojsonschema.NewBytesLoader(snapshot)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate curriculum snapshot: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("curriculum snapshot does not match schema: %s", strings.Join(details, "; "))
	}

	return nil
}
