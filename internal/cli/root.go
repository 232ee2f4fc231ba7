// Package cli is the todo command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/adanyl0v/notebook-todo/internal/client"
	"github.com/adanyl0v/notebook-todo/internal/config"
)

var errTokenRequired = errors.New("bearer token required (set TODO_TOKEN or --token)")

type RootCommand struct {
	cmd    *cobra.Command
	config *config.ClientConfig
}

func NewRootCommand(cfg *config.ClientConfig) *RootCommand {
	root := &RootCommand{config: cfg}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "Manage your to-do list",
		Long: `todo lists, adds, toggles and removes tasks stored by the todo API.

CONFIGURATION:
  TODO_API_URL    API base URL (default: http://localhost:5000)
  TODO_TOKEN      Bearer token issued by the identity provider
  TODO_TIMEOUT    Request timeout (default: 10s)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.cmd.PersistentFlags()
	flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "API base URL (overrides TODO_API_URL)")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "Bearer token (overrides TODO_TOKEN)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (overrides TODO_TIMEOUT)")

	root.addSubcommands()
	return root
}

func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) SetOutput(w io.Writer) {
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := r.controller(cmd.Context())
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), ctrl.State())
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := r.controller(cmd.Context())
			if err != nil {
				return err
			}
			_, err = ctrl.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), ctrl.State())
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := r.controller(cmd.Context())
			if err != nil {
				return err
			}
			_, err = ctrl.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), ctrl.State())
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := r.controller(cmd.Context())
			if err != nil {
				return err
			}
			err = ctrl.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), ctrl.State())
			return nil
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := client.NewAPI(r.config.APIURL, r.httpClient())
			health, err := api.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", health.Status, health.Timestamp)
			return nil
		},
	}

	r.cmd.AddCommand(listCmd, addCmd, toggleCmd, rmCmd, healthCmd)
}

// controller returns a controller that has already loaded the task list.
func (r *RootCommand) controller(ctx context.Context) (*client.Controller, error) {
	if r.config.Token == "" {
		return nil, errTokenRequired
	}

	ctrl := client.NewController(r.config.APIURL, r.httpClient())
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: r.config.Token,
		TokenType:   "Bearer",
	})
	err := ctrl.Authenticate(ctx, ts)
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (r *RootCommand) httpClient() *http.Client {
	return &http.Client{Timeout: r.config.Timeout}
}

func printState(w io.Writer, state client.State) {
	if len(state.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet. Add your first task with `todo add`.")
		return
	}

	for _, t := range state.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %s  %s\n", mark, t.ID, t.Text)
	}

	stats := state.Stats()
	fmt.Fprintf(w, "%d of %d completed\n", stats.Completed, stats.Total)
}
