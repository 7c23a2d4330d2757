package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/components/registration"
	"github.com/goliatone/go-regform/internal/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document for the HTTP routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			routes := registration.MountRoutes(a.cfg.Server.BasePath, registration.NewOptions())
			doc := openapi.Document(openapi.Paths{Form: routes.Form, Live: routes.Live, Schema: routes.Schema})

			raw, err := openapi.JSON(doc)
			if err != nil {
				return err
			}
			if _, err := openapi.Load(cmd.Context(), raw); err != nil {
				return fmt.Errorf("schema: generated document is invalid: %w", err)
			}

			switch strings.ToLower(format) {
			case "", "json":
				raw = append(raw, '\n')
			case "yaml", "yml":
				if raw, err = openapi.YAML(doc); err != nil {
					return err
				}
			default:
				return fmt.Errorf("schema: unsupported format %q", format)
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().String("base-path", "", "path prefix for the form routes")
	return cmd
}
