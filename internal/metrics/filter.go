// Package metrics provides Prometheus counters for filter edits and undo
// history.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	propertyChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "filterbind",
		Subsystem: "filter",
		Name:      "property_changes_total",
		Help:      "Parameter changes that produced a notification",
	}, []string{"service"})

	undoCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "filterbind",
		Subsystem: "undo",
		Name:      "commands_total",
		Help:      "Undo commands pushed to the history",
	}, []string{"kind"})

	undoDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "filterbind",
		Subsystem: "undo",
		Name:      "discarded_total",
		Help:      "Undo brackets that ended without any change",
	}, []string{"kind"})

	keyframeEdits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "filterbind",
		Subsystem: "animation",
		Name:      "keyframe_edits_total",
		Help:      "Keyframe inserts, removals and type changes",
	}, []string{"op"})
)

// RecordPropertyChange counts changed parameters for a filter service.
func RecordPropertyChange(service string, n int) {
	if n <= 0 {
		return
	}
	propertyChanges.WithLabelValues(service).Add(float64(n))
}

// RecordUndoCommand counts a pushed command of kind.
func RecordUndoCommand(kind string) {
	undoCommands.WithLabelValues(kind).Inc()
}

// RecordUndoDiscarded counts a bracket of kind that changed nothing.
func RecordUndoDiscarded(kind string) {
	undoDiscarded.WithLabelValues(kind).Inc()
}

// RecordKeyframeEdit counts a keyframe operation ("insert", "remove",
// "type").
func RecordKeyframeEdit(op string) {
	keyframeEdits.WithLabelValues(op).Inc()
}
