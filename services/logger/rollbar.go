package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/adspirelabs/punotes/core"
)

// RollbarLogger prints to a std logger and reports to Rollbar.
// A core.Person arg is reported as the person, a core.RequestMeta arg as custom data
// merged with any map[string]interface{} arg. Neither is printed.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetServerRoot("github.com/adspirelabs/punotes")
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

type entry struct {
	report  []interface{} // rollbar args: msg, error, custom data
	print   []interface{}
	person  *core.Person
	request *core.RequestMeta
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{report: []interface{}{msg}}
	var custom map[string]interface{}
	for _, arg := range args {
		switch a := arg.(type) {
		case core.Person:
			if e.person == nil { // only report one Person
				p := a
				e.person = &p
			}
		case core.RequestMeta:
			if e.request == nil {
				r := a
				e.request = &r
			}
		case map[string]interface{}:
			if custom == nil {
				custom = make(map[string]interface{}, len(a)+3)
			}
			for k, v := range a {
				custom[k] = v
			}
			e.print = append(e.print, arg)
		default:
			e.report = append(e.report, arg)
			e.print = append(e.print, arg)
		}
	}
	if e.request != nil {
		if custom == nil {
			custom = make(map[string]interface{}, 3)
		}
		for k, v := range e.request.Fields() {
			custom[k] = v
		}
	}
	if custom != nil {
		e.report = append(e.report, custom)
	}
	return e
}

func (l RollbarLogger) prepare(msg string, args []interface{}) entry {
	e := newEntry(msg, args)
	if e.person != nil {
		rollbar.SetPerson(e.person.ID, e.person.Username, e.person.Email)
	} else {
		rollbar.ClearPerson()
	}
	return e
}

func (l RollbarLogger) output(msg string, e entry) {
	if e.request != nil && e.request.ID != "" {
		msg = "[" + e.request.ID + "] " + e.request.Method + " " + e.request.Path + ": " + msg
	}
	l.std.Println(msg)
	for _, arg := range e.print {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	e := l.prepare(msg, args)
	rollbar.Debug(e.report...)
	l.output(msg, e)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	e := l.prepare(msg, args)
	rollbar.Info(e.report...)
	l.output(msg, e)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	e := l.prepare(msg, args)
	rollbar.Warning(e.report...)
	l.output(msg, e)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	e := l.prepare(msg, args)
	rollbar.Error(e.report...)
	l.output(msg, e)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	e := l.prepare(msg, args)
	rollbar.Critical(e.report...)
	l.output(msg, e)
	l.std.Fatal(msg)
}
