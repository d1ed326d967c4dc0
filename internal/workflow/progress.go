package workflow

import (
	"strings"
	"time"

	"maktab/internal/domain"
)

// CompleteStep advances an application by completing its current step.
// Only the current step may be completed (no skipping), each step may be
// completed at most once, and both note and updatedBy are required.
// The application is mutated in place: the step is appended to the
// completed log, CurrentStep moves to the next catalog entry (or the
// terminal "completed" marker, which flips the status and stamps the
// completion date).
func CompleteStep(app *domain.Application, stepID, note, updatedBy string, now time.Time) error {
	if strings.TrimSpace(note) == "" || strings.TrimSpace(updatedBy) == "" {
		return domain.ErrValidation
	}
	if app.Status == domain.AppStatusCompleted {
		return domain.ErrAlreadyCompleted
	}
	if stepID == "" || stepID != app.CurrentStep {
		return domain.ErrStepMismatch
	}
	if app.StepsCompleted.Contains(stepID) {
		return domain.ErrStepAlreadyDone
	}

	today := now.Truncate(24 * time.Hour)
	app.StepsCompleted = append(app.StepsCompleted, domain.CompletedStep{
		Step:          stepID,
		CompletedDate: today,
		Notes:         note,
		UpdatedBy:     updatedBy,
		UpdatedAt:     now,
	})

	next := NextStep(app.ApplicationType, stepID)
	app.CurrentStep = next
	if next == domain.StepCompleted {
		app.Status = domain.AppStatusCompleted
		app.CompletionDate = &today
	} else {
		app.Status = domain.AppStatusInProgress
	}
	return nil
}

// MarkFreeformCompleted completes an application of the catalog-less
// "other" type in a single explicit action.
func MarkFreeformCompleted(app *domain.Application, now time.Time) error {
	if app.ApplicationType != domain.AppTypeOther {
		return domain.ErrNotFreeformType
	}
	if app.Status == domain.AppStatusCompleted {
		return domain.ErrAlreadyCompleted
	}
	today := now.Truncate(24 * time.Hour)
	app.Status = domain.AppStatusCompleted
	app.CurrentStep = domain.StepCompleted
	app.CompletionDate = &today
	return nil
}

// IsStepCompleted reports whether a step is done, derived purely from the
// completed-step log and catalog order. The log is the single source of
// truth; the CurrentStep pointer is treated as derived state.
func IsStepCompleted(app *domain.Application, stepID string) bool {
	return app.StepsCompleted.Contains(stepID)
}

// Progress summarizes how far an application has advanced: completed
// step count over total catalog steps.
func Progress(app *domain.Application) (done, total int) {
	total = len(StepsFor(app.ApplicationType))
	for _, s := range StepsFor(app.ApplicationType) {
		if app.StepsCompleted.Contains(s.ID) {
			done++
		}
	}
	return done, total
}
