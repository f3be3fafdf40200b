package config

import (
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// TraceConf returns the trace settings in the form schuko's trace2go expects.
func (c *Config) TraceConf() testconfig.Conf {
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for key, level := range c.Trace {
		conf["trace."+key] = level
	}
	return conf
}

// SetupTracing routes all tracing to the Go standard logger, with trace levels
// taken from c.
func (c *Config) SetupTracing() error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(c.TraceConf(), "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// SetLevel sets the trace level of t from a level name, as used in configuration
// files. It returns false for unknown names and leaves t unchanged then.
func SetLevel(t tracing.Trace, name string) bool {
	switch name {
	case "Debug":
		t.SetTraceLevel(tracing.LevelDebug)
	case "Info":
		t.SetTraceLevel(tracing.LevelInfo)
	case "Error":
		t.SetTraceLevel(tracing.LevelError)
	default:
		return false
	}
	return true
}
