package models

import "slices"

// CourseStatus represents the lifecycle state of a course.
type CourseStatus string

const (
	CourseStatusDraft       CourseStatus = "draft"        // Editable, not visible to students
	CourseStatusInReview    CourseStatus = "in_review"    // Waiting for an admin decision
	CourseStatusPublished   CourseStatus = "published"    // Live, visible to students
	CourseStatusRejected    CourseStatus = "rejected"     // Sent back to the instructor, editable again
	CourseStatusArchived    CourseStatus = "archived"     // Retired from the catalog, restorable
	CourseStatusSoftDeleted CourseStatus = "soft_deleted" // Hidden everywhere, recoverable to draft
)

// AllCourseStatuses lists every member of the status enumeration.
// Order is the natural forward flow of the lifecycle.
var AllCourseStatuses = []CourseStatus{
	CourseStatusDraft,
	CourseStatusInReview,
	CourseStatusPublished,
	CourseStatusRejected,
	CourseStatusArchived,
	CourseStatusSoftDeleted,
}

// legalTransitions is the single source of truth for transition legality.
// Any ordered pair not present here is an illegal transition.
var legalTransitions = map[CourseStatus][]CourseStatus{
	CourseStatusDraft:       {CourseStatusInReview, CourseStatusSoftDeleted},
	CourseStatusInReview:    {CourseStatusPublished, CourseStatusRejected, CourseStatusDraft},
	CourseStatusPublished:   {CourseStatusArchived, CourseStatusSoftDeleted},
	CourseStatusRejected:    {CourseStatusDraft, CourseStatusInReview, CourseStatusSoftDeleted},
	CourseStatusArchived:    {CourseStatusPublished, CourseStatusSoftDeleted},
	CourseStatusSoftDeleted: {CourseStatusDraft},
}

// Valid reports whether s is a member of the status enumeration. Callers that
// accept untrusted status strings must check this at the boundary.
func (s CourseStatus) Valid() bool {
	return slices.Contains(AllCourseStatuses, s)
}

// CanTransitionTo reports whether the edge s -> to exists in the legality table.
// Pure lookup; unknown statuses simply have no outgoing edges.
func (s CourseStatus) CanTransitionTo(to CourseStatus) bool {
	return slices.Contains(legalTransitions[s], to)
}

// AllowedTransitions returns the legal target statuses from s, in table order.
func (s CourseStatus) AllowedTransitions() []CourseStatus {
	return slices.Clone(legalTransitions[s])
}

// IsEditable reports whether instructors may modify course content in this state.
func (s CourseStatus) IsEditable() bool {
	switch s {
	case CourseStatusDraft, CourseStatusRejected:
		return true
	case CourseStatusInReview, CourseStatusPublished, CourseStatusArchived, CourseStatusSoftDeleted:
		return false
	}

	return false
}

// IsVisibleToStudents reports whether the course appears in the student catalog.
func (s CourseStatus) IsVisibleToStudents() bool {
	switch s {
	case CourseStatusPublished:
		return true
	case CourseStatusDraft, CourseStatusInReview, CourseStatusRejected, CourseStatusArchived, CourseStatusSoftDeleted:
		return false
	}

	return false
}

// RequiredRole returns the minimum role allowed to move a course into this state.
func (s CourseStatus) RequiredRole() Role {
	switch s {
	case CourseStatusDraft, CourseStatusInReview, CourseStatusRejected:
		return RoleInstructor
	case CourseStatusPublished, CourseStatusArchived, CourseStatusSoftDeleted:
		return RoleAdmin
	}

	return RoleAdmin
}

// Label returns the human readable name used in UIs and notifications.
func (s CourseStatus) Label() string {
	switch s {
	case CourseStatusDraft:
		return "Draft"
	case CourseStatusInReview:
		return "In Review"
	case CourseStatusPublished:
		return "Published"
	case CourseStatusRejected:
		return "Rejected"
	case CourseStatusArchived:
		return "Archived"
	case CourseStatusSoftDeleted:
		return "Deleted"
	}

	return string(s)
}
