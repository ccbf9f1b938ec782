package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/2beens/ut2tracker/internal/store"
	"github.com/2beens/ut2tracker/internal/telemetry/metrics"
	"github.com/2beens/ut2tracker/internal/workout"

	log "github.com/sirupsen/logrus"
)

type authenticator interface {
	UserExists(ctx context.Context, username string) (bool, error)
	CheckPassword(ctx context.Context, username, password string) (bool, error)
	Register(ctx context.Context, username, password string) error
}

type workbookStore interface {
	FindWorkbook(ctx context.Context, username string) (bool, error)
	CreateWorkbook(ctx context.Context, username string) (*store.Workbook, error)
	AppendRecord(ctx context.Context, username string, workoutType workout.Type, record workout.Record) error
	ReadColumn(ctx context.Context, username string, workoutType workout.Type, column workout.Column) ([]string, error)
}

// errBackToStart sends the user back to the new/existing user choice.
var errBackToStart = errors.New("back to start")

// Controller drives the interactive session: who the user is, what they want
// to do, and which workout type it is about.
type Controller struct {
	auth      authenticator
	workbooks workbookStore
	printer   *Printer
	prompter  *Prompter
	metrics   *metrics.Manager
	now       func() time.Time
}

type NewControllerParams struct {
	Auth       authenticator
	Workbooks  workbookStore
	In         io.Reader
	Out        io.Writer
	PrintDelay time.Duration
	Metrics    *metrics.Manager
	// Now defaults to time.Now
	Now func() time.Time
}

func NewController(params NewControllerParams) *Controller {
	printer := NewPrinter(params.Out, params.PrintDelay)

	now := params.Now
	if now == nil {
		now = time.Now
	}
	metricsManager := params.Metrics
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}

	return &Controller{
		auth:      params.Auth,
		workbooks: params.Workbooks,
		printer:   printer,
		prompter:  NewPrompter(params.In, printer),
		metrics:   metricsManager,
		now:       now,
	}
}

// Run shows the banner and runs sessions until the user chooses to leave
// or the input is closed. Remote service errors end the current session
// only, they are reported and the user may start over.
func (c *Controller) Run(ctx context.Context) error {
	c.printer.Banner()

	for {
		err := c.runOnce(ctx)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			log.Errorf("session failed: %s", err)
			c.printer.Line(colorError, fmt.Sprintf("An error occurred: %s", err))
		}

		choice, err := c.prompter.Ask(Question{
			Prompt:   promptRunAgain,
			Validate: oneOf("1", "2"),
			Rejection: func(string, error) string {
				return msgInvalidChoice
			},
		})
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		c.printer.Line(colorText, "")

		if choice == "2" {
			c.printer.Paced(colorSuccess, msgGoodbye)
			return nil
		}
	}
}

func (c *Controller) runOnce(ctx context.Context) error {
	c.printer.Paced(colorText, welcomeText)

	for {
		choice, err := c.prompter.Ask(Question{
			Prompt:   promptUserKind,
			Validate: oneOf("1", "2"),
			Rejection: func(string, error) string {
				return msgInvalidChoice
			},
		})
		if err != nil {
			return err
		}

		if choice == "1" {
			return c.register(ctx)
		}

		err = c.login(ctx)
		if errors.Is(err, errBackToStart) {
			continue
		}
		return err
	}
}

func (c *Controller) askUsername() (string, error) {
	return c.prompter.Ask(Question{
		Intro:     usernameIntro,
		Prompt:    promptUsername,
		Validate:  workout.ValidateCredential,
		Rejection: credentialRejection("Username"),
	})
}

func (c *Controller) askPassword() (string, error) {
	return c.prompter.Ask(Question{
		Intro:     passwordIntro,
		Prompt:    promptPassword,
		Validate:  workout.ValidateCredential,
		Rejection: credentialRejection("Password"),
	})
}

func credentialRejection(what string) func(string, error) string {
	return func(_ string, err error) string {
		switch {
		case errors.Is(err, workout.ErrCredentialTooShort):
			return fmt.Sprintf("%s must contain a minimum of %d characters.", what, workout.MinCredentialLength)
		case errors.Is(err, workout.ErrCredentialNotLowercase):
			return fmt.Sprintf("%s must contain only lowercase letters without spaces, numbers or symbols.", what)
		default:
			return fmt.Sprintf("Invalid %s: %s", what, err)
		}
	}
}

// askWorkoutType shows the menu and re-prompts silently until 1, 2 or 3 is typed.
func (c *Controller) askWorkoutType(menu string) (workout.Type, error) {
	choice, err := c.prompter.Ask(Question{
		Intro:    menu,
		Prompt:   promptChoice,
		Validate: oneOf("1", "2", "3"),
	})
	if err != nil {
		return 0, err
	}
	c.printer.Line(colorText, "")
	return workout.ParseChoice(choice)
}
