package entities

type TextResult struct {
	text string

	// finish reason reported by the backend, if any
	finishReason string
}

func NewTextResult(text string, finishReason string) *TextResult {
	return &TextResult{
		text:         text,
		finishReason: finishReason,
	}
}

func (r *TextResult) Text() string {
	return r.text
}

func (r *TextResult) FinishReason() string {
	return r.finishReason
}
