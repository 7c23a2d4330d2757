package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

type action int

const (
	actionSubmit action = iota
	actionEditName
	actionEditEmail
	actionEditPassword
	actionCancel
)

var actionLabels = []string{
	form.SubmitLabel,
	"Edit " + form.FieldName.Label(),
	"Edit " + form.FieldEmail.Label(),
	"Edit " + form.FieldPassword.Label(),
	"Cancel",
}

// Run drives controller through a prompt session: every field is asked once,
// invalid fields are asked again until the form validates, and only then is
// submit offered. It returns the summary of a successful submit.
func (r *Renderer) Run(ctx context.Context, controller *form.Controller, options render.RenderOptions) (form.Summary, error) {
	if ctx == nil {
		return form.Summary{}, errors.New("tui: context is required")
	}
	if controller == nil {
		return form.Summary{}, errors.New("tui: controller is required")
	}

	if err := r.info(ctx, form.Title); err != nil {
		return form.Summary{}, err
	}
	for _, message := range render.MapErrorPayload(options.Errors).Form {
		if err := r.fail(ctx, message); err != nil {
			return form.Summary{}, err
		}
	}

	pending := form.Fields()
	attempts := 0
	for {
		for _, field := range pending {
			if err := r.askField(ctx, controller, field); err != nil {
				return form.Summary{}, err
			}
		}

		view := controller.View()
		if !view.SubmitEnabled {
			attempts++
			if r.maxAttempts > 0 && attempts >= r.maxAttempts {
				return form.Summary{}, ErrTooManyAttempts
			}
			pending = invalidFields(view)
			continue
		}

		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "Ready to submit",
			Options: actionLabels,
		})
		if err != nil {
			return form.Summary{}, err
		}

		switch action(choice) {
		case actionSubmit:
			summary, ok := controller.Submit()
			if !ok {
				pending = invalidFields(controller.View())
				continue
			}
			for _, line := range summary.Lines() {
				if err := r.info(ctx, line); err != nil {
					return form.Summary{}, err
				}
			}
			return summary, nil
		case actionEditName:
			pending = []form.Field{form.FieldName}
		case actionEditEmail:
			pending = []form.Field{form.FieldEmail}
		case actionEditPassword:
			pending = []form.Field{form.FieldPassword}
		default:
			return form.Summary{}, ErrAborted
		}
	}
}

func (r *Renderer) askField(ctx context.Context, controller *form.Controller, field form.Field) error {
	var (
		raw string
		err error
	)
	prompt := InputConfig{
		Message: field.Label(),
		Help:    field.Placeholder(),
	}

	if field == form.FieldPassword {
		show, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{
			Message: form.ToggleLabel,
			Default: controller.ShowPassword(),
		})
		if confirmErr != nil {
			return confirmErr
		}
		controller.SetShowPassword(show)
		if show {
			raw, err = r.driver.Input(ctx, prompt)
		} else {
			raw, err = r.driver.Password(ctx, prompt)
		}
	} else {
		prompt.Default = controller.State().Get(field)
		raw, err = r.driver.Input(ctx, prompt)
	}
	if err != nil {
		return err
	}

	if err := controller.Change(field, raw); err != nil {
		return err
	}
	if message := controller.View().Error(field); message != "" {
		return r.fail(ctx, message)
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+message)
}

func (r *Renderer) fail(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+message)
}

func invalidFields(view form.View) []form.Field {
	var out []form.Field
	for _, field := range form.Fields() {
		if view.Error(field) != "" {
			out = append(out, field)
		}
	}
	return out
}
