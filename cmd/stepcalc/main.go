// Command stepcalc evaluates integer arithmetic exactly and shows every step.
//
// Usage:
//
//	stepcalc                      # interactive REPL
//	stepcalc eval "1 + 7 * -4"    # one-shot evaluation
//	stepcalc serve --addr :8080   # HTTP tool endpoint
//	stepcalc schema               # print the tool schema
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/stepcalc"
	"github.com/njchilds90/stepcalc/internal/config"
	"github.com/njchilds90/stepcalc/internal/display"
	"github.com/njchilds90/stepcalc/internal/logging"
	"github.com/njchilds90/stepcalc/internal/repl"
	"github.com/njchilds90/stepcalc/internal/server"
)

// errFailed marks a command that already reported its failure.
var errFailed = errors.New("evaluation failed")

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "stepcalc",
		Short: "Exact step-by-step arithmetic",
		Long: `stepcalc parses integer arithmetic (+ - * / and parentheses), reduces it to
an integer or a lowest-terms fraction, and shows every intermediate rewrite.
Input an equation such as "1 + 5/3 - 2 = 7/3" to check whether it holds.

Run without arguments to start the interactive prompt.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runREPL,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt",
		Args:  cobra.NoArgs,
		RunE:  a.runREPL,
	}
	replCmd.Flags().Bool("no-tree", false, "hide tree diagrams")
	replCmd.Flags().Bool("no-trace", false, "hide step traces")
	replCmd.Flags().Bool("color", false, "color boxed answers")

	evalCmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate one expression or equation",
		Example: `  stepcalc eval "1 + 7 * -4"
  stepcalc eval --steps "(3 + 4*8)(2 - 1)"
  stepcalc eval --json "1 + 5/3 - 2 = 7/3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runEval,
	}
	evalCmd.Flags().Bool("steps", false, "print every rewrite")
	evalCmd.Flags().Bool("json", false, "print the tool response as JSON")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tool calls over HTTP",
		Args:  cobra.NoArgs,
		RunE:  a.runServe,
	}
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the tool schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), stepcalc.ToolSpec())
			return nil
		},
	}

	root.AddCommand(replCmd, evalCmd, serveCmd, schemaCmd)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) runREPL(cmd *cobra.Command, args []string) error {
	cfg := a.cfg.REPL
	if f := cmd.Flags().Lookup("no-tree"); f != nil && f.Changed {
		cfg.ShowTree = false
	}
	if f := cmd.Flags().Lookup("no-trace"); f != nil && f.Changed {
		cfg.ShowTrace = false
	}
	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		cfg.Color = true
	}
	session := repl.NewSession(cfg, nil, a.logger)
	return session.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

func (a *app) runEval(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	steps, _ := cmd.Flags().GetBool("steps")

	if asJSON {
		resp := stepcalc.HandleToolCall(stepcalc.ToolRequest{
			Tool:   "evaluate",
			Params: map[string]interface{}{"input": input},
		})
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
		if resp.Error != "" {
			return errFailed
		}
		return nil
	}

	outcome, err := stepcalc.Evaluate(input)
	if err != nil {
		a.logger.Debug("input rejected", zap.String("input", input), zap.Error(err))
		return err
	}
	if outcome.Equation != nil {
		return printEquation(out, outcome.Equation, steps)
	}
	return printExpression(out, outcome.Expression.Result, steps)
}

func printExpression(out io.Writer, res stepcalc.Result, steps bool) error {
	canon, ok := res.Canonical()
	if !ok {
		fmt.Fprintln(out, res.Node.String())
		return errFailed
	}
	if steps {
		fmt.Fprint(out, display.Trace(res.Trace))
		return nil
	}
	fmt.Fprintln(out, canon)
	return nil
}

func printEquation(out io.Writer, eq *stepcalc.Equation, steps bool) error {
	if eq.Verdict == stepcalc.Undecided {
		fmt.Fprintln(out, eq.ErrorMessage())
		return errFailed
	}
	if steps {
		fmt.Fprintln(out, "Left side:")
		fmt.Fprint(out, display.Trace(eq.LeftResult.Trace))
		fmt.Fprintln(out, "Right side:")
		fmt.Fprint(out, display.Trace(eq.RightResult.Trace))
	}
	fmt.Fprintf(out, "%s = %s: %s\n", eq.LeftResult.Node, eq.RightResult.Node, eq.Verdict)
	return nil
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	cfg := a.cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	return server.New(cfg, a.logger).Run(cmd.Context())
}
