// Package openapi describes the registration endpoints as an OpenAPI 3
// document and reads such documents back.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/form"
)

const (
	// Version is the OpenAPI version emitted.
	Version = "3.0.3"
	// FormMediaType is the request body media type of POST /register.
	FormMediaType = "application/x-www-form-urlencoded"
	// SubmitOperationID identifies the POST operation.
	SubmitOperationID = "submitRegistration"

	// passwordRunPattern requires a run of six allowed characters. The class
	// checks (lower, upper, digit, special) have no RE2 form and are
	// described in prose instead.
	passwordRunPattern = `[A-Za-z0-9@$!%*?&]{6,}`
)

// Paths lists the routes the document describes, relative to the form route.
type Paths struct {
	Form   string
	Live   string
	Schema string
}

// Document builds the OpenAPI description for routes mounted at paths.
func Document(paths Paths) *openapi3.T {
	formPath := strings.TrimSpace(paths.Form)
	if formPath == "" {
		formPath = "/register"
	}

	htmlResponse := func(description string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(description).
			WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"}))}
	}

	formItem := &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "showRegistration",
			Summary:     "Render the empty registration form",
			Responses:   openapi3.NewResponses(openapi3.WithStatus(200, htmlResponse("Registration form"))),
		},
		Post: &openapi3.Operation{
			OperationID: SubmitOperationID,
			Summary:     "Validate and submit the registration form",
			Description: "Invalid submissions re-render the form with inline errors. Valid submissions render the summary.",
			RequestBody: &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithContent(openapi3.NewContentWithSchema(RequestSchema(), []string{FormMediaType}))},
			Responses: openapi3.NewResponses(openapi3.WithStatus(200, htmlResponse("Form with inline errors, or the submitted summary"))),
		},
	}

	options := []openapi3.NewPathsOption{openapi3.WithPath(formPath, formItem)}
	if live := strings.TrimSpace(paths.Live); live != "" {
		options = append(options, openapi3.WithPath(live, &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "liveRegistration",
				Summary:     "Websocket for per-keystroke validation",
				Description: `Client messages: {"type":"change","field":"email","value":"..."}, {"type":"toggle"}, {"type":"submit"}. Each message is answered with the current view.`,
				Responses: openapi3.NewResponses(openapi3.WithStatus(101, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Switching to the websocket protocol"),
				})),
			},
		}))
	}
	if schema := strings.TrimSpace(paths.Schema); schema != "" {
		options = append(options, openapi3.WithPath(schema, &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "registrationSchema",
				Summary:     "This document",
				Responses: openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("OpenAPI document").
						WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema())),
				})),
			},
		}))
	}

	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   form.Title,
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(options...),
	}
}

// RequestSchema is the form-encoded body accepted by POST.
func RequestSchema() *openapi3.Schema {
	name := openapi3.NewStringSchema().WithMinLength(1)
	name.Description = form.MsgNameRequired

	email := openapi3.NewStringSchema().WithFormat("email").WithPattern(form.EmailPattern)
	email.Description = form.MsgEmailInvalid

	password := openapi3.NewStringSchema().WithMinLength(form.PasswordMinLength).WithPattern(passwordRunPattern)
	password.Description = form.MsgPasswordWeak

	show := openapi3.NewBoolSchema()
	show.Description = "Reveal the password in the re-rendered form"

	schema := openapi3.NewObjectSchema().
		WithProperty(string(form.FieldName), name).
		WithProperty(string(form.FieldEmail), email).
		WithProperty(string(form.FieldPassword), password).
		WithProperty("show_password", show)
	for _, field := range form.Fields() {
		schema.Required = append(schema.Required, string(field))
	}
	return schema
}

// JSON encodes doc with indentation.
func JSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return data, nil
}

// YAML encodes doc as YAML by way of its JSON form so kin-openapi's
// marshalling rules apply.
func YAML(doc *openapi3.T) ([]byte, error) {
	data, err := JSON(doc)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("openapi: decode json as yaml: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return out, nil
}

// Load parses and validates raw (JSON or YAML).
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}

// SubmitFields returns the sorted property names of the POST body in spec.
func SubmitFields(spec *openapi3.T) ([]string, error) {
	if spec == nil || spec.Paths == nil {
		return nil, errors.New("openapi: document has no paths")
	}
	for _, item := range spec.Paths.Map() {
		if item == nil || item.Post == nil || item.Post.OperationID != SubmitOperationID {
			continue
		}
		body := item.Post.RequestBody
		if body == nil || body.Value == nil {
			return nil, errors.New("openapi: submit operation has no request body")
		}
		media := body.Value.Content.Get(FormMediaType)
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			return nil, fmt.Errorf("openapi: submit operation has no %s schema", FormMediaType)
		}
		names := make([]string, 0, len(media.Schema.Value.Properties))
		for name := range media.Schema.Value.Properties {
			names = append(names, name)
		}
		slices.Sort(names)
		return names, nil
	}
	return nil, fmt.Errorf("openapi: operation %q not found", SubmitOperationID)
}
