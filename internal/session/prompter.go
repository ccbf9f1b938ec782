package session

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrQuit is returned once the input is closed.
var ErrQuit = errors.New("input closed")

var (
	errEmptyInput    = errors.New("empty input")
	errInvalidChoice = errors.New("invalid choice")
)

// Question is one input step: Prompt → Validate → {Accept | Reprompt}.
type Question struct {
	// Intro is printed (paced) once, before the first prompt.
	Intro string
	// Prompt is printed before every read.
	Prompt string
	// Validate accepts the answer by returning nil. Nil accepts anything.
	Validate func(answer string) error
	// Rejection returns the message shown before prompting again.
	// An empty message re-prompts silently.
	Rejection func(answer string, err error) string
}

type inputState int

const (
	statePrompt inputState = iota
	stateValidate
	stateReject
	stateAccept
)

type Prompter struct {
	in      *bufio.Reader
	printer *Printer
}

func NewPrompter(in io.Reader, printer *Printer) *Prompter {
	return &Prompter{
		in:      bufio.NewReader(in),
		printer: printer,
	}
}

// Ask loops until the answer is accepted. Only ErrQuit or a read error end it early.
func (p *Prompter) Ask(q Question) (string, error) {
	if q.Intro != "" {
		p.printer.Paced(colorText, q.Intro)
	}

	var (
		answer    string
		rejectErr error
	)
	state := statePrompt
	for {
		switch state {
		case statePrompt:
			p.printer.Prompt(q.Prompt)
			line, err := p.readLine()
			if err != nil {
				return "", err
			}
			answer = line
			state = stateValidate
		case stateValidate:
			if q.Validate != nil {
				rejectErr = q.Validate(answer)
			}
			if rejectErr != nil {
				state = stateReject
			} else {
				state = stateAccept
			}
		case stateReject:
			if q.Rejection != nil {
				if msg := q.Rejection(answer, rejectErr); msg != "" {
					p.printer.Paced(colorError, msg)
				}
			}
			rejectErr = nil
			state = statePrompt
		case stateAccept:
			return answer, nil
		}
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrQuit
			}
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// oneOf accepts only the listed answers.
func oneOf(options ...string) func(string) error {
	return func(answer string) error {
		for _, o := range options {
			if answer == o {
				return nil
			}
		}
		return errInvalidChoice
	}
}

// nonEmpty rejects empty answers with errEmptyInput before running next.
func nonEmpty(next func(string) error) func(string) error {
	return func(answer string) error {
		if answer == "" {
			return errEmptyInput
		}
		if next == nil {
			return nil
		}
		return next(answer)
	}
}
