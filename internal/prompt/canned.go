package prompt

import "io"

// Canned is a scripted Prompter for tests and non-interactive callers.
// Confirmations are consumed in order, then ConfirmDefault applies.
type Canned struct {
	// Confirms are consumed one per Confirm call.
	Confirms []bool

	// ConfirmDefault answers Confirm once Confirms is exhausted.
	ConfirmDefault bool

	// Inputs are consumed one per Input call; exhaustion returns EOF.
	Inputs []string

	// Questions records every question asked, in order.
	Questions []string
}

func (c *Canned) Confirm(question string, def bool) bool {
	c.Questions = append(c.Questions, question)
	if len(c.Confirms) > 0 {
		answer := c.Confirms[0]
		c.Confirms = c.Confirms[1:]
		return answer
	}
	return c.ConfirmDefault
}

func (c *Canned) Input(question string) (string, error) {
	c.Questions = append(c.Questions, question)
	if len(c.Inputs) > 0 {
		answer := c.Inputs[0]
		c.Inputs = c.Inputs[1:]
		return answer, nil
	}
	return "", io.EOF
}
