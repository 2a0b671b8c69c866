package constants

import (
	"fmt"
	"strings"
)

// Role adalah tag peran user (selaras dgn kolom users.user_role).
type Role string

const (
	RoleGuru       Role = "guru"
	RoleSiswa      Role = "siswa"
	RoleSuperAdmin Role = "super_admin"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "❌ Hanya guru yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess = "❌ Hanya siswa yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya super admin yang boleh mengakses fitur %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ParseRole menormalkan string role dari token/DB.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleGuru:
		return RoleGuru, nil
	case RoleSiswa:
		return RoleSiswa, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("role tidak dikenal: %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleGuru,
		RoleSiswa,
		RoleSuperAdmin,
	}

	TeacherAndAbove = []Role{
		RoleGuru,
		RoleSuperAdmin,
	}

	AdminOnly = []Role{
		RoleSuperAdmin,
	}

	StudentOnly = []Role{
		RoleSiswa,
	}
)
