package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maktab/internal/domain"
	"maktab/internal/workflow"
)

var testNow = time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)

func newCancellationApp() *domain.Application {
	return &domain.Application{
		ApplicationType: domain.AppTypeVisaCancellation,
		CurrentStep:     workflow.FirstStep(domain.AppTypeVisaCancellation),
		StepsCompleted:  domain.CompletedSteps{},
		Status:          domain.AppStatusInProgress,
	}
}

func TestCompleteStep_AdvancesThroughFullSequence(t *testing.T) {
	app := newCancellationApp()
	require.Equal(t, "labour_cancellation_typing", app.CurrentStep)

	err := workflow.CompleteStep(app, "labour_cancellation_typing", "typed and printed", "fatima", testNow)
	require.NoError(t, err)
	assert.Equal(t, "labour_cancellation_submission", app.CurrentStep)
	assert.Equal(t, domain.AppStatusInProgress, app.Status)

	err = workflow.CompleteStep(app, "labour_cancellation_submission", "submitted to MOHRE", "fatima", testNow)
	require.NoError(t, err)
	assert.Equal(t, "immigration_cancellation", app.CurrentStep)

	err = workflow.CompleteStep(app, "immigration_cancellation", "visa cancelled", "fatima", testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.StepCompleted, app.CurrentStep)
	assert.Equal(t, domain.AppStatusCompleted, app.Status)
	require.NotNil(t, app.CompletionDate)
	assert.Len(t, app.StepsCompleted, 3)

	done, total := workflow.Progress(app)
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, total)
}

func TestCompleteStep_RejectsSkippingAhead(t *testing.T) {
	app := newCancellationApp()

	err := workflow.CompleteStep(app, "immigration_cancellation", "note", "fatima", testNow)

	assert.ErrorIs(t, err, domain.ErrStepMismatch)
	assert.Equal(t, "labour_cancellation_typing", app.CurrentStep)
	assert.Empty(t, app.StepsCompleted)
}

func TestCompleteStep_RejectsRepeatingACompletedStep(t *testing.T) {
	app := newCancellationApp()
	require.NoError(t, workflow.CompleteStep(app, "labour_cancellation_typing", "done", "fatima", testNow))

	err := workflow.CompleteStep(app, "labour_cancellation_typing", "again", "fatima", testNow)

	assert.ErrorIs(t, err, domain.ErrStepMismatch)
}

func TestCompleteStep_RequiresNoteAndActor(t *testing.T) {
	app := newCancellationApp()

	assert.ErrorIs(t, workflow.CompleteStep(app, "labour_cancellation_typing", "  ", "fatima", testNow), domain.ErrValidation)
	assert.ErrorIs(t, workflow.CompleteStep(app, "labour_cancellation_typing", "note", "", testNow), domain.ErrValidation)
}

func TestCompleteStep_RejectsCompletedApplication(t *testing.T) {
	app := newCancellationApp()
	app.Status = domain.AppStatusCompleted

	err := workflow.CompleteStep(app, "labour_cancellation_typing", "note", "fatima", testNow)

	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
}

func TestCompleteStep_RecordsLogEntryDetails(t *testing.T) {
	app := newCancellationApp()

	require.NoError(t, workflow.CompleteStep(app, "labour_cancellation_typing", "typed", "ahmed", testNow))

	entry := app.StepsCompleted[0]
	assert.Equal(t, "labour_cancellation_typing", entry.Step)
	assert.Equal(t, "typed", entry.Notes)
	assert.Equal(t, "ahmed", entry.UpdatedBy)
	assert.True(t, workflow.IsStepCompleted(app, "labour_cancellation_typing"))
	assert.False(t, workflow.IsStepCompleted(app, "labour_cancellation_submission"))
}

func TestMarkFreeformCompleted(t *testing.T) {
	app := &domain.Application{
		ApplicationType: domain.AppTypeOther,
		Status:          domain.AppStatusInProgress,
	}

	err := workflow.MarkFreeformCompleted(app, testNow)

	require.NoError(t, err)
	assert.Equal(t, domain.AppStatusCompleted, app.Status)
	assert.Equal(t, domain.StepCompleted, app.CurrentStep)
	require.NotNil(t, app.CompletionDate)

	assert.ErrorIs(t, workflow.MarkFreeformCompleted(app, testNow), domain.ErrAlreadyCompleted)
}

func TestMarkFreeformCompleted_RejectsCatalogTypes(t *testing.T) {
	app := newCancellationApp()

	assert.ErrorIs(t, workflow.MarkFreeformCompleted(app, testNow), domain.ErrNotFreeformType)
}

func TestStepsFor_KnownCatalogs(t *testing.T) {
	steps := workflow.StepsFor(domain.AppTypeNewVisa)
	require.Len(t, steps, 8)
	assert.Equal(t, "offer_letter_typing", steps[0].ID)
	assert.Equal(t, "visa_stamping", steps[7].ID)

	assert.Empty(t, workflow.StepsFor(domain.AppTypeOther))
	assert.Nil(t, workflow.StepsFor(domain.ApplicationType("bogus")))
}

func TestNextStep_LastStepLandsOnCompleted(t *testing.T) {
	assert.Equal(t, "labour_cancellation_submission",
		workflow.NextStep(domain.AppTypeVisaCancellation, "labour_cancellation_typing"))
	assert.Equal(t, domain.StepCompleted,
		workflow.NextStep(domain.AppTypeVisaCancellation, "immigration_cancellation"))
}
