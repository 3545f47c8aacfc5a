package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create courses table
			CREATE TABLE courses (
				id UUID PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				short_description TEXT NOT NULL,
				requirements TEXT NOT NULL DEFAULT '',
				learning_outcomes TEXT NOT NULL DEFAULT '',
				target_audience TEXT NOT NULL DEFAULT '',
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				thumbnail_url TEXT NOT NULL DEFAULT '',
				video_url TEXT NOT NULL DEFAULT '',
				duration_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
				status VARCHAR(50) NOT NULL CHECK (status IN ('draft', 'in_review', 'published', 'rejected', 'archived', 'soft_deleted')),
				instructor_id VARCHAR(255) NOT NULL,
				chapters JSONB NOT NULL DEFAULT '[]',
				version_number INTEGER NOT NULL DEFAULT 1,
				is_locked BOOLEAN NOT NULL DEFAULT false,
				rejection_reason TEXT NOT NULL DEFAULT '',
				last_modified_by VARCHAR(255) NOT NULL DEFAULT '',
				submitted_at TIMESTAMP WITH TIME ZONE,
				reviewed_at TIMESTAMP WITH TIME ZONE,
				published_at TIMESTAMP WITH TIME ZONE,
				archived_at TIMESTAMP WITH TIME ZONE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_courses_status ON courses(status);
			CREATE INDEX idx_courses_instructor_id ON courses(instructor_id);
			CREATE INDEX idx_courses_created_at ON courses(created_at);

			-- Create course_audit_log table, append only
			CREATE TABLE course_audit_log (
				id UUID PRIMARY KEY,
				course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
				actor_id VARCHAR(255) NOT NULL,
				from_status VARCHAR(50) NOT NULL,
				to_status VARCHAR(50) NOT NULL,
				reason TEXT NOT NULL DEFAULT '',
				metadata JSONB,
				ip_address VARCHAR(64) NOT NULL DEFAULT '',
				user_agent TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_course_audit_log_course_id ON course_audit_log(course_id);
			CREATE INDEX idx_course_audit_log_created_at ON course_audit_log(created_at);

			-- Create course_versions table, immutable snapshots
			CREATE TABLE course_versions (
				id UUID PRIMARY KEY,
				course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
				version_number INTEGER NOT NULL,
				title VARCHAR(255) NOT NULL,
				short_description TEXT NOT NULL,
				requirements TEXT NOT NULL DEFAULT '',
				learning_outcomes TEXT NOT NULL DEFAULT '',
				target_audience TEXT NOT NULL DEFAULT '',
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				thumbnail_url TEXT NOT NULL DEFAULT '',
				video_url TEXT NOT NULL DEFAULT '',
				curriculum_snapshot JSONB NOT NULL DEFAULT '[]',
				publish_status VARCHAR(50) NOT NULL,
				version_notes TEXT NOT NULL DEFAULT '',
				created_by VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				UNIQUE (course_id, version_number)
			);

			CREATE INDEX idx_course_versions_course_id ON course_versions(course_id);
		`,
	}
}
