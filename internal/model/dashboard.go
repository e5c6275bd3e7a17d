package model

// DashboardData aggregates headline counts for the admin dashboard.
type DashboardData struct {
	LearnerCount   int `json:"learner_count"`
	ParentCount    int `json:"parent_count"`
	TeacherCount   int `json:"teacher_count"`
	ClassCount     int `json:"class_count"`
	EventCount     int `json:"event_count"`
	TodayAbsences  int `json:"today_absences"`
	TodaySessions  int `json:"today_sessions"`
	PendingNotices int `json:"pending_notices"`
}
