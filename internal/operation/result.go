package operation

import "errors"

// Result is the normalized outcome of an execution. Exactly one of Output
// and Error is set, selected by Success.
type Result struct {
	Success bool    `json:"success"`
	Output  *string `json:"output,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// Succeeded returns a successful Result carrying output.
func Succeeded(output string) Result {
	return Result{Success: true, Output: &output}
}

// Failed returns an unsuccessful Result carrying message.
func Failed(message string) Result {
	return Result{Success: false, Error: &message}
}

// fromOutcome maps a transform's return values onto a Result. The error
// text is passed through unchanged.
func fromOutcome(output string, err error) Result {
	if err != nil {
		return Failed(err.Error())
	}
	return Succeeded(output)
}

// Value returns the output, or the failure message as an error.
func (r Result) Value() (string, error) {
	if r.Success {
		if r.Output == nil {
			return "", nil
		}
		return *r.Output, nil
	}
	if r.Error == nil {
		return "", errors.New("operation failed")
	}
	return "", errors.New(*r.Error)
}
