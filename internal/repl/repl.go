// Package repl implements the interactive stepcalc loop. A Session owns the
// history of everything evaluated during one program run.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/njchilds90/stepcalc"
	"github.com/njchilds90/stepcalc/internal/config"
	"github.com/njchilds90/stepcalc/internal/display"
)

const banner = "Input an expression or type 'help', 'history', or 'exit':"

const tutorial = `Input any arithmetic expression with integers.
    Example: 1 + 7 * -4
    Example: (3 + 4*8)( 2 - 1)
Also, input an equation to see if it is true.
    Example: 1 + 5/3 - 2 = 7/3
`

// Session is one interactive run.
type Session struct {
	ID      string
	cfg     config.REPLConfig
	history *History
	printer *display.Printer
	logger  *zap.Logger
}

// NewSession creates a session. A nil history starts empty; a nil logger
// discards logs.
func NewSession(cfg config.REPLConfig, history *History, logger *zap.Logger) *Session {
	if history == nil {
		history = NewHistory(cfg.HistoryLimit)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		ID:      id,
		cfg:     cfg,
		history: history,
		printer: display.NewPrinter(cfg.Color),
		logger:  logger.With(zap.String("session_id", id)),
	}
}

func (s *Session) History() *History { return s.history }

// Run reads lines from in until "exit", EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Debug("session started")
	defer s.logger.Debug("session ended", zap.Int("history", s.history.Len()))

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprintln(out, banner)
		fmt.Fprint(out, s.cfg.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
		if s.Handle(scanner.Text(), out) {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the session should end.
func (s *Session) Handle(line string, out io.Writer) (quit bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit":
		return true
	case "help":
		fmt.Fprintln(out)
		fmt.Fprintln(out, s.printer.Box("TUTORIAL"))
		fmt.Fprint(out, tutorial, "\n")
		return false
	case "history":
		s.printHistory(out)
		return false
	}

	outcome, err := stepcalc.Evaluate(line)
	if err != nil {
		s.logger.Debug("input rejected", zap.String("input", line), zap.Error(err))
		fmt.Fprintln(out, err.Error())
		return false
	}
	if outcome.Equation != nil {
		s.printEquation(outcome.Equation, out)
	} else {
		s.printExpression(outcome.Expression, out)
	}
	return false
}

func (s *Session) printHistory(out io.Writer) {
	if s.history.Len() == 0 {
		fmt.Fprintln(out, "No history yet.")
		return
	}
	for _, e := range s.history.Entries() {
		fmt.Fprintf(out, "%s --> %s\n", e.Input, e.Result)
	}
}

func (s *Session) printExpression(expr *stepcalc.Expression, out io.Writer) {
	if s.cfg.ShowTree {
		fmt.Fprint(out, display.Tree(expr.Tree))
	}

	res := expr.Result
	if canon, ok := res.Canonical(); ok {
		s.history.Record(expr.Tree.String(), canon)
		fmt.Fprintln(out, s.printer.Box("Answer: "+expr.Tree.String()+" = "+canon))
		s.logger.Debug("expression simplified",
			zap.String("input", expr.Tree.String()),
			zap.String("result", canon),
			zap.Int("steps", len(res.Trace)))
	} else {
		fmt.Fprintln(out, res.Node.String())
		s.logger.Debug("simplification failed",
			zap.String("input", expr.Tree.String()),
			zap.Error(res.Err()))
	}

	if s.cfg.ShowTrace {
		fmt.Fprint(out, display.Trace(res.Trace))
	}
}

func (s *Session) printEquation(eq *stepcalc.Equation, out io.Writer) {
	if s.cfg.ShowTree {
		fmt.Fprintln(out, "Left side:")
		fmt.Fprint(out, display.Tree(eq.Left))
		fmt.Fprintln(out, "Right side:")
		fmt.Fprint(out, display.Tree(eq.Right))
	}

	if eq.Verdict == stepcalc.Undecided {
		fmt.Fprintln(out, eq.ErrorMessage())
		s.logger.Debug("equation undecided", zap.Error(eq.Err()))
		return
	}

	text := eq.LeftResult.Node.String() + " = " + eq.RightResult.Node.String()
	if eq.Verdict == stepcalc.Valid {
		fmt.Fprintln(out, s.printer.Box(text+"\nThis equation is valid."))
	} else {
		fmt.Fprintln(out, s.printer.Box(text+"\nThis equation is NOT valid."))
	}
	s.history.Record(eq.Key(), eq.Verdict.String())
	s.logger.Debug("equation compared", zap.String("equation", eq.Key()), zap.Stringer("verdict", eq.Verdict))
}
