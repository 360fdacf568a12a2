package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/web-quickstart/internal/app"
	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/infrastructure"
	"github.com/JaimeStill/web-quickstart/pkg/logging"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
)

// urlExample is one URL building example printed by the urls command.
type urlExample struct {
	endpoint string
	params   map[string]string
}

var urlExamples = []urlExample{
	{endpoint: "index"},
	{endpoint: "login"},
	{endpoint: "login", params: map[string]string{"next": "/"}},
	{endpoint: "profile", params: map[string]string{"username": "John Doe"}},
	{endpoint: routes.StaticEndpoint, params: map[string]string{"filename": "style.css"}},
}

func routesCommand(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the URL map",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := buildRegistry(cfg())
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), reg.Entries())
		},
	}
}

func urlsCommand(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "urls",
		Short: "Print URL building examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := buildRegistry(cfg())
			if err != nil {
				return err
			}
			return printURLs(cmd.OutOrStdout(), reg, urlExamples)
		},
	}
}

func hashPasswordCommand(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for an auth.users password_hash entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), cfg().Auth.BcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

// buildRegistry assembles the application without starting any system so
// that its URL map can be inspected.
func buildRegistry(cfg *config.Config) (*routes.Registry, error) {
	infra, err := infrastructure.NewWithLogger(cfg, logging.Discard())
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg, infra)
	if err != nil {
		return nil, err
	}
	return a.Registry(), nil
}

func printRoutes(w io.Writer, entries []routes.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPOINT\tMETHODS\tRULE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Endpoint, strings.Join(e.Methods, ","), e.Rule)
	}
	return tw.Flush()
}

func printURLs(w io.Writer, reg *routes.Registry, examples []urlExample) error {
	for _, ex := range examples {
		u, err := reg.URLFor(ex.endpoint, ex.params)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, u)
	}
	return nil
}
