package model

// Role is one of the four fixed staff roles. The values appear verbatim in
// JWT claims and in the users table.
type Role string

const (
	RoleAdministrateur Role = "ADMINISTRATEUR"
	RoleSuperviseur    Role = "SUPERVISEUR_DE_PREPARATION"
	RolePreparateur    Role = "AGENT_DE_PREPARATION"
	RoleAccueil        Role = "AGENT_ACCUEIL"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdministrateur, RoleSuperviseur, RolePreparateur, RoleAccueil}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrateur, RoleSuperviseur, RolePreparateur, RoleAccueil:
		return true
	}
	return false
}

// User represents a staff account.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"nom" db:"nom"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	Role     Role   `json:"role" db:"role"`
}

// UserCreateRequest is the payload for registering a staff account.
type UserCreateRequest struct {
	Name     string `json:"nom"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UserUpdateRequest is the payload for updating a staff account. Pointer
// fields distinguish "absent" from "set to zero value"; presence matters for
// the self-update field restrictions.
type UserUpdateRequest struct {
	Name     *string `json:"nom,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}
