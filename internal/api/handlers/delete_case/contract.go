package delete_case

import "context"

type CalendarService interface {
	DeleteCase(ctx context.Context, caseID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
