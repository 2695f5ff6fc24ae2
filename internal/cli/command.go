package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mymyunsw/internal/lookup"
	"mymyunsw/internal/lookup/metrics"
	"mymyunsw/internal/platform/postgres"
	"mymyunsw/pkg/domain"
	dErrors "mymyunsw/pkg/domain-errors"
)

// Exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Request is what a tool hands to its main query once inputs are resolved.
// Fields a tool does not take are left zero.
type Request struct {
	Tool    string
	Subject domain.SubjectCode
	Filter  domain.FilterExpr
	Lookup  *lookup.Result
}

// QueryFunc runs a tool's main query inside the open session.
type QueryFunc func(ctx context.Context, s *postgres.Session, req Request) error

// Env carries the collaborators a tool runs against.
type Env struct {
	Open     postgres.Opener
	NewStore func(s *postgres.Session) lookup.Store
	Query    QueryFunc
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Tool is one command-line entry point.
type Tool struct {
	Name    string
	Short   string
	Usage   string
	MinArgs int
	MaxArgs int
	Run     func(ctx context.Context, env *Env, args []string) error
}

// NewCommand builds the cobra command for tool. Tools take no flags: every
// token, including ones starting with "-", is a positional argument, so
// "-h" or "-credits>6" reach the argument checks and tool.Run unchanged.
func NewCommand(tool Tool, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:                tool.Name,
		Short:              tool.Short,
		Args:               argsBetween(tool.MinArgs, tool.MaxArgs, tool.Usage),
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tool.Run(cmd.Context(), env, args)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// Execute runs cmd with args and maps the outcome to an exit status. It is
// the only place errors become output: one line on out, then status 1.
func Execute(ctx context.Context, cmd *cobra.Command, args []string, out io.Writer) int {
	// cobra falls back to os.Args when handed nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	Report(out, err)
	return ExitFailure
}

var failure = color.New(color.FgRed)

// Report prints the user-facing line for err. Expected failures (usage, bad
// identifier, unknown key) print their message alone; anything else also
// carries the cause.
func Report(out io.Writer, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeUsage:
		_, _ = fmt.Fprintln(out, dErrors.MessageOf(err))
	case dErrors.CodeInvalidIdentifier, dErrors.CodeInvalidInput, dErrors.CodeNotFound:
		_, _ = failure.Fprintln(out, dErrors.MessageOf(err))
	default:
		_, _ = failure.Fprintln(out, err.Error())
	}
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// withSession opens the single session of this invocation and guarantees it
// is closed on every path out of fn.
func (e *Env) withSession(ctx context.Context, fn func(ctx context.Context, s *postgres.Session) error) error {
	open := func(ctx context.Context) (*postgres.Session, error) {
		s, err := e.Open(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "database unavailable")
		}
		return s, nil
	}
	return postgres.WithSession(ctx, open, fn)
}

func (e *Env) query(ctx context.Context, s *postgres.Session, req Request) error {
	if e.Query == nil {
		e.logger().DebugContext(ctx, "no main query configured", "tool", req.Tool)
		return nil
	}
	return e.Query(ctx, s, req)
}

func (e *Env) resolve(ctx context.Context, s *postgres.Session, plan lookup.Plan) (*lookup.Result, error) {
	resolver, err := lookup.New(e.NewStore(s), lookup.WithLogger(e.logger()), lookup.WithMetrics(e.Metrics))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "lookup unavailable")
	}
	var res *lookup.Result
	err = s.ReadOnly(ctx, func(ctx context.Context) error {
		res, err = resolver.Execute(ctx, plan)
		return err
	})
	return res, err
}
