package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xpanvictor/quickpost/internal/domains/voice"
)

const demoBanner = "*** DEMO DATA: placeholder, not from your recording. It cannot be posted. ***"

// terminal reviews extracted records on a text console and prints toasts.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) Toast(message string) {
	fmt.Fprintf(t.out, "! %s\n", message)
}

func (t *terminal) ReviewUser(ctx context.Context, res voice.UserResult) (bool, error) {
	if res.IsDemo() {
		fmt.Fprintln(t.out, demoBanner)
	}
	u := res.User
	fmt.Fprintln(t.out, "Your details:")
	fmt.Fprintf(t.out, "  Name:     %s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(t.out, "  Mobile:   %s\n", orDash(u.Mobile))
	fmt.Fprintf(t.out, "  Location: %s\n", orDash(u.Location.String()))
	return t.confirm(ctx, "Create the account with these details?")
}

func (t *terminal) ReviewJob(ctx context.Context, res voice.JobResult) (bool, error) {
	if res.IsDemo() {
		fmt.Fprintln(t.out, demoBanner)
	}
	j := res.Job
	fmt.Fprintln(t.out, "Your job:")
	fmt.Fprintf(t.out, "  Title:     %s\n", j.Title)
	fmt.Fprintf(t.out, "  Service:   %s\n", j.ServiceCategory)
	fmt.Fprintf(t.out, "  Urgency:   %s\n", j.Urgency)
	fmt.Fprintf(t.out, "  Location:  %s\n", orDash(j.Location.String()))
	if j.Budget != nil {
		fmt.Fprintf(t.out, "  Budget:    %s\n", j.Budget.String())
	}
	if j.Timeframe != "" {
		fmt.Fprintf(t.out, "  When:      %s\n", j.Timeframe)
	}
	for _, r := range j.Requirements {
		fmt.Fprintf(t.out, "  - %s\n", r)
	}
	fmt.Fprintf(t.out, "  Details:   %s\n", j.Description)
	return t.confirm(ctx, "Post this job?")
}

// confirm asks a yes/no question. Anything but y/yes is a no.
func (t *terminal) confirm(ctx context.Context, question string) (bool, error) {
	answer, err := t.ask(ctx, question+" [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ask prints prompt and reads one line.
func (t *terminal) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
