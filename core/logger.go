package core

// Logger is any leveled logger.
// expected args fmt: error | map[string]interface{} | any value printable with %+v
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies who triggered a logged event. Loggers attach it to the report when passed as an arg.
type Person struct {
	ID       string
	Username string
	Email    string
}

// RequestMeta identifies the HTTP request a logged event belongs to.
// Loggers report it as custom data when passed as an arg.
type RequestMeta struct {
	ID     string
	Method string
	Path   string
}

func (m RequestMeta) Fields() map[string]interface{} {
	return map[string]interface{}{
		"request_id": m.ID,
		"method":     m.Method,
		"path":       m.Path,
	}
}
