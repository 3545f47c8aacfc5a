// Package identity defines the actor model and the authorization collaborator
// consumed by the lifecycle engine. Authorization is an explicit input: every
// lifecycle operation receives the acting identity as a parameter instead of
// reading ambient security state.
package identity

import (
	"slices"

	"github.com/courseloom/courseloom/pkg/models"
)

// Actor is the identity initiating a lifecycle operation.
type Actor struct {
	ID    string        `json:"id"    validate:"required"`
	Name  string        `json:"name"`
	Email string        `json:"email" validate:"omitempty,email"`
	Roles []models.Role `json:"roles"`
}

// HasRole reports whether the actor holds a role satisfying required.
func (a Actor) HasRole(required models.Role) bool {
	return slices.ContainsFunc(a.Roles, func(r models.Role) bool {
		return r.Satisfies(required)
	})
}

// Authorizer reports role membership and course ownership for an actor.
type Authorizer interface {
	HasRole(actor Actor, required models.Role) bool
	OwnsCourse(actor Actor, course *models.Course) bool
}

// DefaultAuthorizer resolves authorization directly from the actor's role set
// and the course's instructor reference.
type DefaultAuthorizer struct{}

// NewAuthorizer creates the default authorizer.
func NewAuthorizer() *DefaultAuthorizer {
	return &DefaultAuthorizer{}
}

func (DefaultAuthorizer) HasRole(actor Actor, required models.Role) bool {
	return actor.HasRole(required)
}

// OwnsCourse reports whether the actor is the course's instructor.
func (DefaultAuthorizer) OwnsCourse(actor Actor, course *models.Course) bool {
	if course == nil || actor.ID == "" {
		return false
	}

	return course.InstructorID == actor.ID
}
