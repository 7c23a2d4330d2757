package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
)

// app carries state shared by every subcommand.
type app struct {
	v          *viper.Viper
	cfgFile    string
	cfg        config.Config
	isTerminal func(fd uintptr) bool
}

func newApp() *app {
	return &app{
		v:          config.New(),
		isTerminal: func(fd uintptr) bool { return term.IsTerminal(int(fd)) },
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regform",
		Short: "Registration form with live validation",
		Long: `regform renders a registration form (name, email, password) with
sanitised input, inline validation and a submit gated on validity.

It can serve the form over HTTP, ask for it with line prompts, or show it as a
full-screen terminal UI.`,
		SilenceUsage:      true,
		Version:           version,
		PersistentPreRunE: a.load,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.regform.yaml or $HOME/.regform.yaml)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newServeCmd(a), newPromptCmd(a), newTUICmd(a), newSchemaCmd(a))
	return cmd
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		logging.Debugf("using config file %s", used)
	}
	a.cfg = cfg
	return nil
}

func (a *app) generator(options ...regform.Option) (*regform.Generator, error) {
	options = append([]regform.Option{
		regform.WithTheme(a.cfg.Theme.RendererConfig()),
		regform.WithListener(logTransition),
	}, options...)
	return regform.New(options...)
}

func (a *app) requireTerminal(name string, files ...*os.File) error {
	for _, f := range files {
		if !a.isTerminal(f.Fd()) {
			return fmt.Errorf("%s: %s is not a terminal", name, f.Name())
		}
	}
	return nil
}

func logTransition(t form.Transition) {
	if t.Field != "" {
		logging.Debugf("%s %s: %s -> %s", t.Event, t.Field, t.From, t.To)
		return
	}
	logging.Debugf("%s: %s -> %s", t.Event, t.From, t.To)
}
