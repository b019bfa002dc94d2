package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/abenson/pbbdash/internal/workflow"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	// Should not panic
	ref.Send(ProgressMsg{Percent: 50})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{} // nil program - Send is a no-op

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref.Send(ProgressMsg{Percent: i})
		}(i)
	}
	wg.Wait()
	// If we reach here without panic/race, the test passes
}

func TestTUIProgressReporter_NilProgram(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}, generation: 1}
	// Should not panic with no program attached
	reporter.ReportProgress(workflow.ProgressInventory, "generating program inventory")
}

func TestTUIRenderer_NilProgram(t *testing.T) {
	renderer := &TUIRenderer{ref: &programRef{}, generation: 1}
	// Should not panic with no program attached
	renderer.RenderSuccess(workflow.Summary{TotalPrograms: 4, CompletedAt: time.Now()})
	renderer.RenderError(workflow.StepCost, "budget allocation failed")
}
