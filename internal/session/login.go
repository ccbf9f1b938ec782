package session

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type loginState int

const (
	loginUsername loginState = iota
	loginUnknownUser
	loginPassword
	loginDone
)

// login asks for an existing username and its password. An unknown username
// may send the user back to the new/existing choice (errBackToStart); a wrong
// password starts over from the username.
func (c *Controller) login(ctx context.Context) error {
	var username string

	state := loginUsername
	for state != loginDone {
		switch state {
		case loginUsername:
			name, err := c.askUsername()
			if err != nil {
				return err
			}
			exists, err := c.auth.UserExists(ctx, name)
			if err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if !exists {
				c.metrics.CounterLogins.WithLabelValues("unknown_user").Inc()
				c.printer.Paced(colorError, msgUsernameUnknown)
				state = loginUnknownUser
				continue
			}
			username = name
			state = loginPassword
		case loginUnknownUser:
			choice, err := c.prompter.Ask(Question{
				Prompt:   promptUnknownUser,
				Validate: oneOf("", "1"),
				Rejection: func(string, error) string {
					return msgInvalidChoice
				},
			})
			if err != nil {
				return err
			}
			if choice == "1" {
				return errBackToStart
			}
			state = loginUsername
		case loginPassword:
			password, err := c.askPassword()
			if err != nil {
				return err
			}
			ok, err := c.auth.CheckPassword(ctx, username, password)
			if err != nil {
				return fmt.Errorf("check password: %w", err)
			}
			if !ok {
				c.metrics.CounterLogins.WithLabelValues("wrong_password").Inc()
				c.printer.Paced(colorError, msgWrongPassword)
				state = loginUsername
				continue
			}
			c.metrics.CounterLogins.WithLabelValues("ok").Inc()
			state = loginDone
		}
	}

	log.Debugf("user [%s] logged in", username)
	c.printer.Paced(colorSuccess, fmt.Sprintf("Welcome back %s!", username))

	found, err := c.workbooks.FindWorkbook(ctx, username)
	if err != nil {
		return fmt.Errorf("find workbook: %w", err)
	}
	if !found {
		log.Warnf("user [%s] has no workbook, creating one", username)
		if err := c.createWorkbook(ctx, username); err != nil {
			return err
		}
	}

	return c.actionMenu(ctx, username)
}
