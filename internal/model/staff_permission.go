package model

// StaffPermission is a permission code attached to a role and embedded into
// staff JWT claims.
type StaffPermission string

const (
	PermissionLearnersRead    StaffPermission = "learners:read"
	PermissionLearnersWrite   StaffPermission = "learners:write"
	PermissionLearnersImport  StaffPermission = "learners:import"
	PermissionParentsRead     StaffPermission = "parents:read"
	PermissionParentsWrite    StaffPermission = "parents:write"
	PermissionTeachersRead    StaffPermission = "teachers:read"
	PermissionTeachersWrite   StaffPermission = "teachers:write"
	PermissionClassesRead     StaffPermission = "classes:read"
	PermissionClassesWrite    StaffPermission = "classes:write"
	PermissionEventsRead      StaffPermission = "events:read"
	PermissionEventsWrite     StaffPermission = "events:write"
	PermissionConsentsRead    StaffPermission = "consents:read"
	PermissionConsentsWrite   StaffPermission = "consents:write"
	PermissionAttendanceRead  StaffPermission = "attendance:read"
	PermissionAttendanceWrite StaffPermission = "attendance:write"
	PermissionRecipientsRead  StaffPermission = "recipients:read"
	PermissionStaffRead       StaffPermission = "staff:read"
	PermissionStaffWrite      StaffPermission = "staff:write"
	PermissionRolesRead       StaffPermission = "roles:read"
	PermissionRolesWrite      StaffPermission = "roles:write"
	PermissionSettingsRead    StaffPermission = "settings:read"
	PermissionSettingsWrite   StaffPermission = "settings:write"
)

// AllPermissions lists every permission code for role management UIs.
var AllPermissions = []StaffPermission{
	PermissionLearnersRead,
	PermissionLearnersWrite,
	PermissionLearnersImport,
	PermissionParentsRead,
	PermissionParentsWrite,
	PermissionTeachersRead,
	PermissionTeachersWrite,
	PermissionClassesRead,
	PermissionClassesWrite,
	PermissionEventsRead,
	PermissionEventsWrite,
	PermissionConsentsRead,
	PermissionConsentsWrite,
	PermissionAttendanceRead,
	PermissionAttendanceWrite,
	PermissionRecipientsRead,
	PermissionStaffRead,
	PermissionStaffWrite,
	PermissionRolesRead,
	PermissionRolesWrite,
	PermissionSettingsRead,
	PermissionSettingsWrite,
}
