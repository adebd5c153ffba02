package filter

import (
	"maps"
	"slices"

	"github.com/smazurov/filterbind/internal/events"
	"github.com/smazurov/filterbind/internal/snapshot"
	"github.com/smazurov/filterbind/internal/undo"
)

// ApplyAnalysisResults writes the results of a finished analysis job and
// publishes AnalyzeFinishedEvent. The writes are undoable only with
// WithRecordAnalysisUndo. Call it on the control goroutine.
//
// The writes form their own bracket even while a user command is open; the
// open command no longer sees the written names as its own changes.
func (f *Filter) ApplyAnalysisResults(results map[string]string, success bool) {
	if success && len(results) > 0 {
		names := slices.Sorted(maps.Keys(results))
		outer, depth := f.pending, f.depth
		f.pending, f.depth = nil, 0

		f.start(&bracket{
			kind:        undo.ParameterChanged,
			description: "Analysis results",
			record:      f.recordAnalysis,
		})
		for _, name := range names {
			f.writeRaw(name, results[name])
		}
		f.EndUndoCommand()

		if outer != nil {
			outer.before = outer.before.Merge(snapshot.Capture(f.props), names)
			f.logger.Debug("Analysis results applied outside open undo command",
				"description", outer.description, "names", names)
		}
		f.pending, f.depth = outer, depth
	}
	f.publish(events.AnalyzeFinishedEvent{FilterID: f.id.String(), Success: success})
}
