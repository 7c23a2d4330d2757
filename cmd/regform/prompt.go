package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/bubble"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form with line prompts and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireTerminal("prompt", os.Stdin); err != nil {
				return err
			}
			format, ok := tui.ParseOutputFormat(a.cfg.Prompt.Output)
			if !ok {
				return fmt.Errorf("prompt: unsupported output %q", a.cfg.Prompt.Output)
			}
			prompt, err := tui.New(tui.WithOutputFormat(format), tui.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return a.runSession(cmd, prompt)
		},
	}
	cmd.Flags().String("output", "", "result format: json, form, pretty or yaml")
	return cmd
}

// runSession drives renderer interactively, then prints its rendering of the
// final view to stdout.
func (a *app) runSession(cmd *cobra.Command, renderer render.Renderer) error {
	registry := render.NewRegistry()
	if err := registry.Register(renderer); err != nil {
		return err
	}
	gen, err := a.generator(regform.WithRegistry(registry), regform.WithDefaultRenderer(renderer.Name()))
	if err != nil {
		return err
	}
	session, err := gen.Registry().Interactive(renderer.Name())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	controller := gen.Controller()
	options := regform.RenderOptions{Theme: a.cfg.Theme.RendererConfig()}
	summary, err := session.Run(ctx, controller, options)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, bubble.ErrAborted) {
			logging.Warnf("%s: cancelled", renderer.Name())
		}
		return err
	}
	logging.Infof("submitted %s <%s>", logging.RedactName(summary.Name), logging.RedactEmail(summary.Email))

	out, err := renderer.Render(ctx, controller.View(), options)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
