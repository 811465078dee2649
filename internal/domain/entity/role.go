package entity

// Role is displayed in the app bar; no permission checks hang off it.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDoctor       Role = "Doctor"
	RoleNurse        Role = "Nurse"
	RoleReceptionist Role = "Receptionist"
	RoleLabStaff     Role = "Lab Staff"
	RolePharmacist   Role = "Pharmacist"
	RolePatient      Role = "Patient"
)

var Roles = []Role{
	RoleAdmin,
	RoleDoctor,
	RoleNurse,
	RoleReceptionist,
	RoleLabStaff,
	RolePharmacist,
	RolePatient,
}

func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
