// Package events describes the outcomes a synchronization pass reports and
// the sinks that receive them.
package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Kind identifies what a pass did to one coordinate.
type Kind string

const (
	// AddedToCatalog reports a new catalog entry synthesized from the build file.
	AddedToCatalog Kind = "added-to-catalog"
	// AddedToBuildFile reports a new managed declaration inserted into the build file.
	AddedToBuildFile Kind = "added-to-build-file"
	// UpdatedCatalogVersion reports a catalog version raised to the build file's.
	UpdatedCatalogVersion Kind = "updated-catalog-version"
	// UpdatedBuildFileVersion reports a build file version raised to the catalog's.
	UpdatedBuildFileVersion Kind = "updated-build-file-version"
)

// Message returns the log line used for events of kind k.
func (k Kind) Message() string {
	switch k {
	case AddedToCatalog:
		return "added new catalog dependency declaration"
	case AddedToBuildFile:
		return "added new build file dependency declaration"
	case UpdatedCatalogVersion:
		return "updated catalog dependency declaration"
	case UpdatedBuildFileVersion:
		return "updated build file dependency declaration"
	default:
		return string(k)
	}
}

// Event is one reported change. Old is empty for additions.
type Event struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Old  string `json:"old,omitempty" yaml:"old,omitempty"`
	New  string `json:"new" yaml:"new"`
}

// Sink receives events.
type Sink interface {
	Report(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Report calls f(e).
func (f SinkFunc) Report(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// LogSink writes one info line per event.
type LogSink struct {
	Logger *zerolog.Logger
}

// NewLogSink returns a sink logging to logger.
func NewLogSink(logger *zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

// Report logs e.
func (s *LogSink) Report(e Event) {
	ev := s.Logger.Info().Str("kind", string(e.Kind))
	if e.Old != "" {
		ev = ev.Str("old", e.Old)
	}
	ev.Str("new", e.New).Msg(e.Kind.Message())
}

// Recorder keeps every reported event in order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Report records e.
func (r *Recorder) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Tee fans every event out to all sinks, in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			if s != nil {
				s.Report(e)
			}
		}
	})
}
