package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Ask writes "label: " to w and returns the next line from r, trimmed.
// A final line without a newline still counts as an answer.
func Ask(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)

	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskSecret reads a value from the terminal without echo. Callers wipe
// the result with common.Wipe.
func AskSecret(w io.Writer, label string) ([]byte, error) {
	fmt.Fprintf(w, "%s: ", label)
	defer fmt.Fprintln(w)

	return readPassword(int(os.Stdin.Fd()))
}

// AskChoice asks for one of options, case-insensitively. An empty answer
// picks def.
func AskChoice(r *bufio.Reader, w io.Writer, label string, options []string, def string) (string, error) {
	answer, err := Ask(r, w, fmt.Sprintf("%s (%s) [%s]", label, strings.Join(options, "|"), def))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	answer = strings.ToLower(answer)
	if !slices.Contains(options, answer) {
		return "", fmt.Errorf("%q is not one of %s", answer, strings.Join(options, ", "))
	}
	return answer, nil
}
