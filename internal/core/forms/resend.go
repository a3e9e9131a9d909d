package forms

// Resend is the state of a "resend code" action.
// It is independent of the main form: starting or finishing a resend never
// changes Form.Phase, and a form submission never changes Resend.Pending.
type Resend struct {
	Pending bool
	Message string
	Error   string
}

// Start marks the resend in flight and clears previous messages.
// It returns false if a resend is already pending.
func (r *Resend) Start() bool {
	if r.Pending {
		return false
	}
	r.Pending = true
	r.Message = ""
	r.Error = ""
	return true
}

// Done records a successful resend.
func (r *Resend) Done(message string) {
	r.Pending = false
	r.Message = message
}

// Failed records a failed resend.
func (r *Resend) Failed(message string) {
	r.Pending = false
	r.Error = message
}

// Apply folds an outcome into the resend state.
func (r *Resend) Apply(o Outcome) {
	switch {
	case o.Success:
		r.Done(o.Message)
	case len(o.Fields) > 0:
		r.Failed(o.Fields.First())
	default:
		r.Failed(o.Error)
	}
}
