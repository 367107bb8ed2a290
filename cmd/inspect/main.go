// Command inspect prints sessions, transcripts and devices from the store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"toni/repositories"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

type options struct {
	dsn      string
	logLevel string
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "inspect",
		Short:         "Inspect the toni session store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.dsn, "db", os.Getenv("DATABASE_URL"), "store DSN (badger://dir, sqlite://path)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "ERROR", "log level")

	root.AddCommand(
		newSessionsCmd(opts),
		newSessionCmd(opts),
		newRequestsCmd(opts),
		newDevicesCmd(opts),
		newDeleteSessionCmd(opts),
		newKeysCmd(opts),
	)
	return root
}

func (o *options) logger() *slog.Logger {
	return logs.GetLoggerFromString(o.logLevel)
}

// withStore opens the store read-only unless write is set.
func (o *options) withStore(write bool, fn func(ctx context.Context, store repositories.IStore) error) error {
	open := repositories.OpenReadOnly
	if write {
		open = repositories.Open
	}
	store, err := open(o.dsn, o.logger())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	return fn(context.Background(), store)
}

func newSessionsCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List the most recently updated sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStore(false, func(ctx context.Context, store repositories.IStore) error {
				sessions, err := store.RecentSessions(ctx, limit)
				if err != nil {
					return err
				}
				printSessions(cmd.OutOrStdout(), sessions)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", repositories.DefaultRecentSessions, "number of sessions")
	return cmd
}

func newSessionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "session <session-id>",
		Short: "Print one session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(false, func(ctx context.Context, store repositories.IStore) error {
				session, err := store.GetSession(ctx, args[0])
				if err != nil {
					return err
				}
				messages, err := store.ListMessages(ctx, args[0])
				if err != nil {
					return err
				}
				printTranscript(cmd.OutOrStdout(), session, messages)
				return nil
			})
		},
	}
}

func newRequestsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "requests <session-id>",
		Short: "Print the AI request log of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(false, func(ctx context.Context, store repositories.IStore) error {
				entries, err := store.ListRequestLogs(ctx, args[0])
				if err != nil {
					return err
				}
				printRequests(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
}

func newDevicesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List registered devices, most recently seen first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStore(false, func(ctx context.Context, store repositories.IStore) error {
				devices, err := store.ListDevices(ctx)
				if err != nil {
					return err
				}
				printDevices(cmd.OutOrStdout(), devices)
				return nil
			})
		},
	}
}

func newDeleteSessionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-session <session-id>",
		Short: "Delete a session and its transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(true, func(ctx context.Context, store repositories.IStore) error {
				if err := store.DeleteSession(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), success.Sprintf("deleted %s", args[0]))
				return nil
			})
		},
	}
}
