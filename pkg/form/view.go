package form

// Title is the heading every front end shows above the form.
const Title = "Registration Form"

// ToggleLabel labels the password visibility control.
const ToggleLabel = "Show Password"

// SubmitLabel labels the submit control.
const SubmitLabel = "Submit"

// View is an immutable snapshot of a controller, shaped for renderers and
// JSON transport.
type View struct {
	State         FormState        `json:"-"`
	Result        ValidationResult `json:"result"`
	Phase         Phase            `json:"phase"`
	ShowPassword  bool             `json:"showPassword"`
	SubmitEnabled bool             `json:"submitEnabled"`
	Summary       *Summary         `json:"summary,omitempty"`
}

// Submitted reports whether the summary should be shown.
func (v View) Submitted() bool {
	return v.Phase == PhaseSubmitted && v.Summary != nil
}

// Value returns the stored value for field.
func (v View) Value(field Field) string {
	return v.State.Get(field)
}

// Error returns the inline message for field, or "" when valid.
func (v View) Error(field Field) string {
	msg, _ := v.Result.Error(field)
	return msg
}

// PasswordInputType is "text" while the password is revealed and
// "password" otherwise.
func (v View) PasswordInputType() string {
	if v.ShowPassword {
		return "text"
	}
	return "password"
}

// Summary is the read-only record revealed after a successful submit.
type Summary struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

func newSummary(state FormState) Summary {
	return Summary{Name: state.Name, Email: state.Email}
}

// Lines renders the summary the way every front end prints it.
func (s Summary) Lines() []string {
	return []string{
		"Name: " + s.Name,
		"Email: " + s.Email,
	}
}
