package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateEmptyForm(t *testing.T) {
	got := Validate(FormState{})
	want := ValidationResult{
		Errors: map[Field]string{
			FieldName:     MsgNameRequired,
			FieldEmail:    MsgEmailInvalid,
			FieldPassword: MsgPasswordRequired,
		},
		Valid: false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateValidForm(t *testing.T) {
	got := Validate(FormState{Name: "Jane", Email: "jane@example.com", Password: "Secret1!"})
	if !got.Valid {
		t.Fatalf("expected valid form, got errors %v", got.Errors)
	}
	if len(got.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", got.Errors)
	}
}

func TestValidateChecksEveryField(t *testing.T) {
	got := Validate(FormState{Name: "", Email: "not-an-email", Password: "abc"})
	if len(got.Errors) != 3 {
		t.Fatalf("expected all three fields flagged, got %v", got.Errors)
	}
	if got.Errors[FieldPassword] != MsgPasswordWeak {
		t.Fatalf("unexpected password message %q", got.Errors[FieldPassword])
	}
}

func TestValidateName(t *testing.T) {
	if msg, ok := ValidateName(""); ok || msg != MsgNameRequired {
		t.Fatalf("empty name: got (%q, %v)", msg, ok)
	}
	if msg, ok := ValidateName("Jane"); !ok || msg != "" {
		t.Fatalf("non-empty name: got (%q, %v)", msg, ok)
	}
}

func TestValidateEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com":          true,
		"first.last+tag@sub.d-x.io": true,
		"a_b%c@host.info":           true,
		"not-an-email":              false,
		"":                          false,
		"user@example":              false,
		"user@example.c":            false,
		"user@example.museum":       false,
		"user name@example.com":     false,
		"@example.com":              false,
		"user@example.c0m":          false,
	}
	for in, wantValid := range cases {
		msg, ok := ValidateEmail(in)
		if ok != wantValid {
			t.Fatalf("ValidateEmail(%q) valid=%v, want %v", in, ok, wantValid)
		}
		if !ok && msg != MsgEmailInvalid {
			t.Fatalf("ValidateEmail(%q) message %q", in, msg)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: MsgPasswordRequired},
		{in: "abc", want: MsgPasswordWeak},
		{in: "abcdef", want: MsgPasswordWeak},
		{in: "Abcdef1", want: MsgPasswordWeak},
		{in: "abcdef1!", want: MsgPasswordWeak},
		{in: "ABCDEF1!", want: MsgPasswordWeak},
		{in: "Abcdef!!", want: MsgPasswordWeak},
		{in: "Ab1!", want: MsgPasswordWeak},
		{in: "Abcdef1!", want: ""},
		{in: "Secret1!", want: ""},
		{in: "aB3$xy", want: ""},
		{in: "Secret1&amp;", want: ""},
		// A disallowed character does not fail the check while a long enough
		// run of allowed characters precedes the remaining classes.
		{in: "Ab1!xyz#", want: ""},
		{in: "Ab#1!xy", want: MsgPasswordWeak},
		{in: "Ab1\n!xyzw", want: MsgPasswordWeak},
	}
	for _, tc := range cases {
		msg, ok := ValidatePassword(tc.in)
		if tc.want == "" {
			if !ok {
				t.Fatalf("ValidatePassword(%q) = %q, want valid", tc.in, msg)
			}
			continue
		}
		if ok || msg != tc.want {
			t.Fatalf("ValidatePassword(%q) = (%q, %v), want %q", tc.in, msg, ok, tc.want)
		}
	}
}

func TestValidationResultMessages(t *testing.T) {
	result := Validate(FormState{Name: "Jane", Email: "bad"})
	want := map[string][]string{
		"email":    {MsgEmailInvalid},
		"password": {MsgPasswordRequired},
	}
	if diff := cmp.Diff(want, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if Validate(FormState{Name: "Jane", Email: "jane@example.com", Password: "Secret1!"}).Messages() != nil {
		t.Fatalf("expected nil messages for a valid form")
	}
}
