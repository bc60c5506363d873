package wizard

// Controls is the visibility of the navigation controls.
type Controls struct {
	Prev   bool
	Next   bool
	Submit bool
}

// Surface is whatever renders the questionnaire. The controller drives it
// and never reads back from it.
type Surface interface {
	// ShowSection marks section active as the only visible one.
	ShowSection(active, total int)

	// SetProgress sets the progress indicator, 0 to 100.
	SetProgress(percent float64)

	// SetStepCounter displays "step of total".
	SetStepCounter(step, total int)

	SetControls(c Controls)

	ScrollToTop()

	// Alert shows a blocking message to the user.
	Alert(message string)

	// SetSubmitState relabels the submit control and enables or disables it.
	SetSubmitState(label string, busy bool)

	// Navigate moves to another view, e.g. ResultsPath.
	Navigate(path string)
}
