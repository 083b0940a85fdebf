package summary

import (
	"context"
	"fmt"
)

// Stage names.
const (
	StageDraft     = "draft"
	StageTranslate = "translate"
)

// StageError reports which stage of the pipeline failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("summary stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Request is the input shared by every stage.
type Request struct {
	Source      string
	Destination string
	Language    string
}

// Stage transforms the text produced so far. The first stage gets "".
// A stage that does not apply returns its input unchanged.
type Stage struct {
	Name string
	Run  func(ctx context.Context, req Request, text string) (string, error)
}

// Pipeline runs stages in order, stopping at the first failure.
type Pipeline []Stage

func (p Pipeline) Run(ctx context.Context, req Request) (string, error) {
	text := ""
	for _, st := range p {
		out, err := st.Run(ctx, req, text)
		if err != nil {
			return "", &StageError{Stage: st.Name, Err: err}
		}
		text = out
	}
	return text, nil
}
