package domain

// Response is the normalized success payload of a remote call.
type Response struct {
	Status int `json:"status"`
	Body   any `json:"body,omitempty"`
}

// Outcome records the result of attempting one command.
type Outcome struct {
	Command  Command   `json:"command"`
	Success  bool      `json:"success"`
	Aborted  bool      `json:"aborted"`
	Attempts int       `json:"attempts"`
	Response *Response `json:"response,omitempty"`
	Err      error     `json:"-"`
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Total        int
	Attempted    int
	Succeeded    int
	Failed       int
	NotAttempted int
	Aborted      bool
	AbortErr     error
}

// Summarize counts outcomes against the number of compiled commands.
// Commands after an abort are reported as not attempted, not as failures.
func Summarize(total int, outcomes []Outcome) Summary {
	s := Summary{Total: total, Attempted: len(outcomes)}
	for _, o := range outcomes {
		if o.Success {
			s.Succeeded++
			continue
		}
		s.Failed++
		if o.Aborted {
			s.Aborted = true
			s.AbortErr = o.Err
		}
	}
	s.NotAttempted = total - len(outcomes)
	return s
}
