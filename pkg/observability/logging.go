package observability

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one record per event.
// Steps are logged at Debug, outcomes at Info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("step",
				"machine", e.Machine,
				"step", e.Step,
				"from", e.From,
				"to", e.To,
				"read", e.Read,
				"write", e.Write,
				"move", e.Move.Token(),
				"head", e.Head,
			)
		},
		OnOutcome: func(e *domain.OutcomeEvent) {
			logger.Info("outcome",
				"machine", e.Machine,
				"kind", e.Outcome.Kind,
				"steps", e.Outcome.Steps,
				"state", e.State,
			)
		},
		OnTapeGrow: func(e *domain.GrowthEvent) {
			logger.Debug("tape_grow",
				"machine", e.Machine,
				"side", e.Side,
				"cells", e.Cells,
				"len", e.Len,
			)
		},
	}
}
