package model

// Setting is a single key/value application setting row.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Well-known setting keys.
const (
	SettingSchoolName                 = "school_name"
	SettingAbsenceNotificationsEnable = "absence_notifications_enabled"
)

// UpdateSettingsRequest is the payload for bulk-updating settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1"`
}
