// Package dialog is the presentation seam for negative verdicts.
//
// The core never renders UI itself: on a negative verdict in a GUI mode it
// hands the dialog parameters to a Presenter and acts on the operator's
// decision. The console implementation stands in for the automation
// platform's modal dialog; a no-op implementation backs silent mode.
package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Decision is the operator's response to a blocking prompt.
type Decision int

const (
	// DecisionAcknowledged means the negative outcome stands.
	DecisionAcknowledged Decision = iota
	// DecisionOverridden means the operator chose to continue anyway.
	// Only soft prompts can produce it.
	DecisionOverridden
)

// Prompt carries everything the external dialog needs.
type Prompt struct {
	Organization string
	Package      string
	Title        string
	Message      string
	ErrorCode    int
	Timeout      time.Duration
	Reboot       bool
	Step         string

	// AllowOverride enables the continue-anyway option (gui-soft mode).
	AllowOverride bool
}

// Presenter shows a blocking prompt and reports the operator's decision.
type Presenter interface {
	Show(ctx context.Context, p Prompt) (Decision, error)
}

// ConsolePresenter renders prompts as text. It stands in for the automation
// platform's modal dialog when osready runs interactively.
type ConsolePresenter struct {
	Out io.Writer
	// In supplies the operator's response for override prompts. Nil means
	// no operator is present; override prompts then resolve to
	// DecisionAcknowledged.
	In io.Reader
}

// Show renders the prompt. With AllowOverride set it asks whether to
// continue anyway and waits for a response, the context deadline, or the
// prompt's own timeout, whichever comes first.
func (c *ConsolePresenter) Show(ctx context.Context, p Prompt) (Decision, error) {
	fmt.Fprintf(c.Out, "\n[%s / %s] %s\n", p.Organization, p.Package, p.Title)
	fmt.Fprintf(c.Out, "step: %s, error code: %d\n\n", p.Step, p.ErrorCode)
	fmt.Fprintln(c.Out, p.Message)
	if p.Reboot {
		fmt.Fprintln(c.Out, "\nA reboot is required after remediation.")
	}

	if !p.AllowOverride || c.In == nil {
		return DecisionAcknowledged, nil
	}

	fmt.Fprint(c.Out, "\nContinue anyway? [y/N]: ")
	return c.awaitAnswer(ctx, p.Timeout)
}

// awaitAnswer reads one line from In, bounded by the prompt timeout and the
// context. No answer in time means the negative outcome stands.
func (c *ConsolePresenter) awaitAnswer(ctx context.Context, timeout time.Duration) (Decision, error) {
	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(c.In).ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	var expire <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expire = timer.C
	}

	select {
	case a := <-ch:
		if a.err != nil && a.line == "" {
			return DecisionAcknowledged, nil
		}
		if isYes(a.line) {
			return DecisionOverridden, nil
		}
		return DecisionAcknowledged, nil
	case <-expire:
		fmt.Fprintln(c.Out, "\n(no response, continuing with negative outcome)")
		return DecisionAcknowledged, nil
	case <-ctx.Done():
		return DecisionAcknowledged, ctx.Err()
	}
}

// isYes reports whether the operator answered affirmatively.
func isYes(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// noopPresenter backs silent mode: nothing is shown, nothing is overridden.
type noopPresenter struct{}

func (noopPresenter) Show(ctx context.Context, p Prompt) (Decision, error) {
	return DecisionAcknowledged, nil
}

// Noop returns a Presenter that shows nothing.
func Noop() Presenter {
	return noopPresenter{}
}
