package session

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type registerState int

const (
	registerUsername registerState = iota
	registerPassword
	registerPersist
	registerWorkbook
	registerDone
)

// register collects a unique username and a password, persists them, and
// then makes sure the new user has a workbook to log into.
func (c *Controller) register(ctx context.Context) error {
	var username, password string

	state := registerUsername
	for state != registerDone {
		switch state {
		case registerUsername:
			name, err := c.askUsername()
			if err != nil {
				return err
			}
			exists, err := c.auth.UserExists(ctx, name)
			if err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if exists {
				c.printer.Paced(colorError, msgUsernameTaken)
				continue
			}
			username = name
			state = registerPassword
		case registerPassword:
			pass, err := c.askPassword()
			if err != nil {
				return err
			}
			password = pass
			state = registerPersist
		case registerPersist:
			if err := c.auth.Register(ctx, username, password); err != nil {
				return fmt.Errorf("register user: %w", err)
			}
			c.metrics.CounterRegistrations.Inc()
			log.Debugf("registered user [%s]", username)
			c.printer.Paced(colorSuccess, msgUserAdded)
			state = registerWorkbook
		case registerWorkbook:
			found, err := c.workbooks.FindWorkbook(ctx, username)
			if err != nil {
				return fmt.Errorf("find workbook: %w", err)
			}
			if found {
				return c.actionMenu(ctx, username)
			}
			c.printer.Paced(colorSuccess, fmt.Sprintf("Thanks for signing up %s!", username))
			if err := c.createWorkbook(ctx, username); err != nil {
				return err
			}
			state = registerDone
		}
	}

	return c.logWorkout(ctx, username)
}

func (c *Controller) createWorkbook(ctx context.Context, username string) error {
	workbook, err := c.workbooks.CreateWorkbook(ctx, username)
	if err != nil && workbook == nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err != nil {
		// the workbook exists, it could not be shared
		log.Warnf("workbook [%s] created, sharing failed: %s", workbook.Name, err)
		c.printer.Paced(colorError, fmt.Sprintf("Your workbook was created, but sharing it failed: %s", err))
		return nil
	}

	log.Debugf("workbook [%s] created for user [%s]", workbook.Name, username)
	if workbook.SharedWith == "" {
		c.printer.Paced(colorError, msgNotShared)
		return nil
	}
	c.printer.Paced(colorSuccess, fmt.Sprintf("Your workbook %q was created and shared with %s.", workbook.Name, workbook.SharedWith))
	return nil
}
