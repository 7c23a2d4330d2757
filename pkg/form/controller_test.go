package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestControllerStartsEditing(t *testing.T) {
	c := NewController()
	if c.Phase() != PhaseEditing {
		t.Fatalf("expected editing phase, got %s", c.Phase())
	}
	view := c.View()
	if view.SubmitEnabled {
		t.Fatalf("submit must be disabled for an empty form")
	}
	if view.Submitted() {
		t.Fatalf("summary must not render before submit")
	}
}

func TestControllerEndToEndSubmit(t *testing.T) {
	c := NewController()
	mustChange(t, c, FieldName, "Jane")
	if c.Phase() != PhaseBlocked {
		t.Fatalf("expected blocked after partial input, got %s", c.Phase())
	}
	mustChange(t, c, FieldEmail, "jane@example.com")
	mustChange(t, c, FieldPassword, "Secret1!")

	if c.Phase() != PhaseSubmittable {
		t.Fatalf("expected submittable, got %s (errors %v)", c.Phase(), c.Result().Errors)
	}
	if !c.View().SubmitEnabled {
		t.Fatalf("submit should be enabled for a valid form")
	}

	summary, ok := c.Submit()
	if !ok {
		t.Fatalf("expected submit to succeed")
	}
	if diff := cmp.Diff([]string{"Name: Jane", "Email: jane@example.com"}, summary.Lines()); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	view := c.View()
	if !view.Submitted() || view.Summary == nil || *view.Summary != summary {
		t.Fatalf("expected summary in view, got %+v", view)
	}
}

func TestControllerSubmitBlockedIsNoop(t *testing.T) {
	c := NewController()
	mustChange(t, c, FieldName, "Jane")
	mustChange(t, c, FieldEmail, "jane@example.com")

	before := c.View()
	if _, ok := c.Submit(); ok {
		t.Fatalf("submit must be suppressed while a field is empty")
	}
	after := c.View()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("blocked submit changed the view (-before +after):\n%s", diff)
	}
	if after.Submitted() {
		t.Fatalf("summary must stay hidden")
	}
}

func TestControllerSubmitFromEditingIsNoop(t *testing.T) {
	c := NewController()
	if _, ok := c.Submit(); ok {
		t.Fatalf("submit must be suppressed before any input")
	}
	if c.Phase() != PhaseEditing {
		t.Fatalf("phase changed to %s", c.Phase())
	}
}

func TestControllerSanitisesOnChange(t *testing.T) {
	c := NewController()
	mustChange(t, c, FieldName, "  <b>Jane</b><script>alert(1)</script> ")
	if got := c.State().Name; got != "Jane" {
		t.Fatalf("expected sanitised name, got %q", got)
	}
}

func TestControllerRevalidatesOnEveryChange(t *testing.T) {
	c := NewController()
	mustChange(t, c, FieldName, "Jane")
	mustChange(t, c, FieldEmail, "jane@example.com")
	mustChange(t, c, FieldPassword, "Secret1!")
	if c.Phase() != PhaseSubmittable {
		t.Fatalf("expected submittable, got %s", c.Phase())
	}

	mustChange(t, c, FieldEmail, "not-an-email")
	if c.Phase() != PhaseBlocked {
		t.Fatalf("expected blocked after invalid edit, got %s", c.Phase())
	}
	if msg := c.View().Error(FieldEmail); msg != MsgEmailInvalid {
		t.Fatalf("expected email error, got %q", msg)
	}
	if c.View().SubmitEnabled {
		t.Fatalf("submit must follow validity")
	}
}

func TestControllerTogglePassword(t *testing.T) {
	c := NewController()
	mustChange(t, c, FieldPassword, "abc")
	resultBefore := c.Result()

	c.TogglePassword()
	if !c.ShowPassword() || c.View().PasswordInputType() != "text" {
		t.Fatalf("expected password to be visible")
	}
	c.TogglePassword()
	if c.ShowPassword() || c.View().PasswordInputType() != "password" {
		t.Fatalf("expected password to be hidden")
	}
	if diff := cmp.Diff(resultBefore, c.Result()); diff != "" {
		t.Fatalf("toggle changed validation (-want +got):\n%s", diff)
	}

	c.SetShowPassword(true)
	if !c.ShowPassword() {
		t.Fatalf("SetShowPassword(true) did not reveal the password")
	}
}

func TestControllerRejectsChangesAfterSubmit(t *testing.T) {
	c := NewController(WithInitialState(FormState{Name: "Jane", Email: "jane@example.com", Password: "Secret1!"}))
	if _, ok := c.Submit(); !ok {
		t.Fatalf("expected seeded form to submit")
	}
	err := c.Change(FieldName, "Joan")
	if !errors.Is(err, ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted, got %v", err)
	}
	if c.State().Name != "Jane" {
		t.Fatalf("state mutated after submit")
	}
	if _, ok := c.Submit(); ok {
		t.Fatalf("second submit should be a no-op")
	}
}

func TestControllerApplyAndListener(t *testing.T) {
	var transitions []Transition
	c := NewController(WithListener(func(tr Transition) {
		transitions = append(transitions, tr)
	}))

	err := c.Apply(map[Field]string{
		FieldPassword: "Secret1!",
		FieldName:     "Jane",
		FieldEmail:    "jane@example.com",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	var fields []Field
	for _, tr := range transitions {
		fields = append(fields, tr.Field)
	}
	if diff := cmp.Diff([]Field{FieldName, FieldEmail, FieldPassword}, fields); diff != "" {
		t.Fatalf("apply order mismatch (-want +got):\n%s", diff)
	}
	last := transitions[len(transitions)-1]
	if last.From != PhaseBlocked || last.To != PhaseSubmittable {
		t.Fatalf("unexpected last transition %+v", last)
	}
}

func TestControllerRejectsUnknownField(t *testing.T) {
	c := NewController()
	if err := c.Change(Field("age"), "42"); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if c.Phase() != PhaseEditing {
		t.Fatalf("unknown field changed phase to %s", c.Phase())
	}
}

func mustChange(t *testing.T, c *Controller, field Field, value string) {
	t.Helper()
	if err := c.Change(field, value); err != nil {
		t.Fatalf("change %s: %v", field, err)
	}
}
