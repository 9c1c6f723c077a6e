package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/bisscrape"
)

var _ bisscrape.Authenticator = (*ConsoleAuthenticator)(nil)

// ConsoleAuthenticator asks the user to finish a login in the browser
// window and waits for Enter.
type ConsoleAuthenticator struct {
	In  *bufio.Reader
	Out io.Writer

	// Interactive is false when no browser window is available to log in
	// with. Authenticate then fails immediately.
	Interactive bool
}

// Authenticate blocks until the user confirms the login or ctx is done.
func (a *ConsoleAuthenticator) Authenticate(ctx context.Context, gateURL string) error {
	if !a.Interactive {
		return bisscrape.Errorf(bisscrape.EAUTH,
			"login required at %s. Run once without --headless and --http to log in", gateURL)
	}

	fmt.Fprintf(a.Out, "Login required at %s\n", gateURL)
	fmt.Fprintln(a.Out, "Complete the login in the browser window, then press Enter to continue.")
	_, err := readLine(ctx, a.In)
	return err
}

// confirm prints question and reports whether the answer was y or yes.
func confirm(ctx context.Context, in *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s (y/n): ", question)
	answer, err := readLine(ctx, in)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLine reads one trimmed line from in. EOF after a partial line counts
// as a line.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- result{strings.TrimSpace(line), err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("read input: %w", r.err)
		}
		return r.line, nil
	}
}
