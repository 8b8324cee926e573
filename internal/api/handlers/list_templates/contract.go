package list_templates

type Logger interface {
	Info(format string, v ...interface{})
}
