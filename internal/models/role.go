package models

// Role is the closed set of account roles. It is fixed at registration and
// re-asserted at every login.
type Role string

const (
	RolePatient    Role = "Patient"
	RoleTechnician Role = "Technician"
	RolePhysician  Role = "Physician"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleTechnician, RolePhysician:
		return true
	}
	return false
}

// StaffRole reports whether r is a staff role eligible for staff registration.
func (r Role) StaffRole() bool {
	return r == RoleTechnician || r == RolePhysician
}

func (r Role) String() string {
	return string(r)
}
