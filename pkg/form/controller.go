package form

import "errors"

// Phase is the controller's position in the form lifecycle.
type Phase string

const (
	// PhaseEditing is the initial phase, before any field changed.
	PhaseEditing Phase = "editing"
	// PhaseSubmittable means every field is valid.
	PhaseSubmittable Phase = "submittable"
	// PhaseBlocked means at least one field is invalid.
	PhaseBlocked Phase = "blocked"
	// PhaseSubmitted is terminal; the summary is visible.
	PhaseSubmitted Phase = "submitted"
)

// ErrSubmitted is returned by Change once the form has been submitted.
var ErrSubmitted = errors.New("form: already submitted")

// Transition describes one controller step for listeners.
type Transition struct {
	Event  string
	Field  Field
	From   Phase
	To     Phase
	Result ValidationResult
}

// Listener observes controller transitions. It must not call back into the
// controller.
type Listener func(Transition)

// Option configures a Controller.
type Option func(*Controller)

// WithListener registers fn to observe every transition.
func WithListener(fn Listener) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}

// WithInitialState seeds the controller with already-sanitised values. The
// controller validates them immediately and leaves PhaseEditing.
func WithInitialState(state FormState) Option {
	return func(c *Controller) {
		c.state = state
		c.seeded = true
	}
}

// Controller owns one FormState for a single session. It is not safe for
// concurrent use; each session drives its own controller from one goroutine.
type Controller struct {
	state        FormState
	result       ValidationResult
	phase        Phase
	showPassword bool
	summary      *Summary
	listeners    []Listener
	seeded       bool
}

// NewController returns a controller in PhaseEditing with an empty form.
func NewController(options ...Option) *Controller {
	c := &Controller{phase: PhaseEditing}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.result = Validate(c.state)
	if c.seeded {
		c.phase = phaseFor(c.result)
	}
	return c
}

// Change sanitises raw, stores it under field and re-validates the whole
// form.
func (c *Controller) Change(field Field, raw string) error {
	if c.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if _, err := ParseField(string(field)); err != nil {
		return err
	}
	from := c.phase
	c.state = c.state.With(field, Sanitize(raw))
	c.result = Validate(c.state)
	c.phase = phaseFor(c.result)
	c.notify(Transition{Event: "change", Field: field, From: from, To: c.phase, Result: c.result})
	return nil
}

// Apply runs Change for each field present in values, in render order.
func (c *Controller) Apply(values map[Field]string) error {
	for _, field := range Fields() {
		raw, ok := values[field]
		if !ok {
			continue
		}
		if err := c.Change(field, raw); err != nil {
			return err
		}
	}
	return nil
}

// TogglePassword flips password visibility. Validity is unaffected.
func (c *Controller) TogglePassword() {
	c.showPassword = !c.showPassword
	c.notify(Transition{Event: "toggle", From: c.phase, To: c.phase, Result: c.result})
}

// SetShowPassword sets password visibility explicitly.
func (c *Controller) SetShowPassword(show bool) {
	if c.showPassword == show {
		return
	}
	c.TogglePassword()
}

// Submit moves a submittable form to PhaseSubmitted and returns its summary.
// From any other phase it does nothing and reports false.
func (c *Controller) Submit() (Summary, bool) {
	if c.phase != PhaseSubmittable {
		c.notify(Transition{Event: "submit_blocked", From: c.phase, To: c.phase, Result: c.result})
		return Summary{}, false
	}
	summary := newSummary(c.state)
	c.summary = &summary
	c.phase = PhaseSubmitted
	c.notify(Transition{Event: "submit", From: PhaseSubmittable, To: PhaseSubmitted, Result: c.result})
	return summary, true
}

// State returns a copy of the stored values.
func (c *Controller) State() FormState {
	return c.state
}

// Result returns the validation outcome for the current state.
func (c *Controller) Result() ValidationResult {
	return c.result
}

// Phase reports the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// ShowPassword reports whether the password is displayed in clear text.
func (c *Controller) ShowPassword() bool {
	return c.showPassword
}

// View snapshots everything a renderer needs.
func (c *Controller) View() View {
	view := View{
		State:         c.state,
		Result:        cloneResult(c.result),
		Phase:         c.phase,
		ShowPassword:  c.showPassword,
		SubmitEnabled: c.result.Valid,
	}
	if c.summary != nil {
		summary := *c.summary
		view.Summary = &summary
	}
	return view
}

func (c *Controller) notify(t Transition) {
	for _, fn := range c.listeners {
		fn(t)
	}
}

func phaseFor(result ValidationResult) Phase {
	if result.Valid {
		return PhaseSubmittable
	}
	return PhaseBlocked
}

func cloneResult(result ValidationResult) ValidationResult {
	out := ValidationResult{Valid: result.Valid, Errors: make(map[Field]string, len(result.Errors))}
	for field, msg := range result.Errors {
		out.Errors[field] = msg
	}
	return out
}
