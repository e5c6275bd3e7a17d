package config

type WorkerKeyStruct struct {
	AbsenceNoticeQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AbsenceNoticeQueue: "absence_notice_queue",
}
