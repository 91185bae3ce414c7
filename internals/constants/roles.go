package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "❌ Only teacher or admin roles may access %s."
	ErrOnlyAdminsCanAccess   = "❌ Only admin roles may access %s."
	ErrOnlyStudentsCanAccess = "❌ Only student roles may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

var (
	StaffRoles   = []string{RoleAdmin, RoleTeacher}
	AdminOnly    = []string{RoleAdmin}
	StudentRoles = []string{RoleStudent}
)
