package model

// Phase is the lifecycle phase of a screen's view-state
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

// ViewState is a tagged union over loading, error(message) and ready(data).
// Exactly one phase holds at a time; Error is set only in PhaseError and Data
// only in PhaseReady.
type ViewState[T any] struct {
	Phase Phase  `json:"phase"`
	Error string `json:"error,omitempty"`
	Data  *T     `json:"data,omitempty"`
}

// Loading returns a view-state in the loading phase
func Loading[T any]() ViewState[T] {
	return ViewState[T]{Phase: PhaseLoading}
}

// Failed returns a view-state in the error phase
func Failed[T any](message string) ViewState[T] {
	return ViewState[T]{Phase: PhaseError, Error: message}
}

// Ready returns a view-state in the ready phase
func Ready[T any](data T) ViewState[T] {
	return ViewState[T]{Phase: PhaseReady, Data: &data}
}

func (v ViewState[T]) IsLoading() bool { return v.Phase == PhaseLoading }
func (v ViewState[T]) IsError() bool   { return v.Phase == PhaseError }
func (v ViewState[T]) IsReady() bool   { return v.Phase == PhaseReady && v.Data != nil }
