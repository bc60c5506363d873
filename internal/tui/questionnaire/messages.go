package questionnaire

import "github.com/druarnfield/mindcheck/internal/predict"

// SubmitDoneMsg carries the outcome of the prediction call back to the
// event loop.
type SubmitDoneMsg struct {
	Resp *predict.Response
	Err  error
}
