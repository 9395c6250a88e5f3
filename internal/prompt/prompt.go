// Package prompt asks the operator for credentials and confirmation.
//
// On a terminal the questions are rendered with survey. When stdin is not
// a terminal (piped input, CI) a plain line reader is used instead so the
// tool stays scriptable.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// ErrCancelled is returned when the operator interrupts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Prompter asks interactive questions.
type Prompter interface {
	// Input asks for a line of text. def is shown and used for an empty answer.
	Input(message, def string) (string, error)

	// Password asks for a secret without echoing it.
	Password(message string) (string, error)

	// Confirm asks a yes/no question. Only "y" and "yes" confirm.
	Confirm(message string) (bool, error)
}

// New returns a survey prompter when stdin is a terminal and a line
// prompter otherwise.
func New() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return &SurveyPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stderr)
}

// SurveyPrompter renders prompts with github.com/AlecAivazis/survey.
type SurveyPrompter struct{}

// Input implements Prompter.
func (p *SurveyPrompter) Input(message, def string) (string, error) {
	var answer string
	q := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(q, &answer); err != nil {
		return "", surveyErr(err)
	}
	return strings.TrimSpace(answer), nil
}

// Password implements Prompter.
func (p *SurveyPrompter) Password(message string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Password{Message: message}, &answer); err != nil {
		return "", surveyErr(err)
	}
	return answer, nil
}

// Confirm implements Prompter. The default answer is no.
func (p *SurveyPrompter) Confirm(message string) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok); err != nil {
		return false, surveyErr(err)
	}
	return ok, nil
}

func surveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt failed: %w", err)
}

// LinePrompter reads answers line by line from a reader.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter that writes questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Input implements Prompter.
func (p *LinePrompter) Input(message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", message)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Password implements Prompter. The answer is read as a plain line.
func (p *LinePrompter) Password(message string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", message)
	return p.readLine()
}

// Confirm implements Prompter.
func (p *LinePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// readLine returns the next line without its line ending. A closed input
// with nothing typed counts as an interrupted prompt.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// IsYes reports whether answer is "y" or "yes", ignoring case and
// surrounding whitespace.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Static answers from fixed values, for callers that already know every
// answer, such as tests driving the publish command.
type Static struct {
	Username  string
	Secret    string
	Confirmed bool

	// Err, when set, is returned by every call.
	Err error

	// Asked records the messages in call order.
	Asked []string
}

// Input implements Prompter.
func (s *Static) Input(message, def string) (string, error) {
	s.Asked = append(s.Asked, message)
	if s.Err != nil {
		return "", s.Err
	}
	if s.Username == "" {
		return def, nil
	}
	return s.Username, nil
}

// Password implements Prompter.
func (s *Static) Password(message string) (string, error) {
	s.Asked = append(s.Asked, message)
	return s.Secret, s.Err
}

// Confirm implements Prompter.
func (s *Static) Confirm(message string) (bool, error) {
	s.Asked = append(s.Asked, message)
	if s.Err != nil {
		return false, s.Err
	}
	return s.Confirmed, nil
}
