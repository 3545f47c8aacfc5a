package models

// Role is the authorization level of an actor within the lifecycle engine.
type Role string

const (
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Satisfies reports whether holding r is enough when required is demanded.
// Admins satisfy every requirement; instructors only satisfy instructor-gated actions.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}

	return r == required
}
