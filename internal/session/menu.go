package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/ut2tracker/internal/workout"
	"github.com/2beens/ut2tracker/pkg"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
)

func (c *Controller) actionMenu(ctx context.Context, username string) error {
	c.printer.Paced(colorMenu, "What would you like to do today?\n"+actionMenu)
	choice, err := c.prompter.Ask(Question{
		Prompt:   promptChoice,
		Validate: oneOf("1", "2", "3"),
	})
	if err != nil {
		return err
	}
	c.printer.Line(colorText, "")

	switch choice {
	case "1":
		return c.logWorkout(ctx, username)
	case "2":
		return c.showHistory(ctx, username)
	default:
		return c.showAverages(ctx, username)
	}
}

func (c *Controller) logWorkout(ctx context.Context, username string) error {
	workoutType, err := c.askWorkoutType(logWorkoutMenu)
	if err != nil {
		return err
	}

	duration, err := c.prompter.Ask(Question{
		Intro:    durationIntro,
		Prompt:   promptDuration,
		Validate: nonEmpty(workout.ValidateDuration),
		Rejection: measurementRejection(
			"Invalid duration. Please use the format 00:00:00, e.g. 01:20:00.",
		),
	})
	if err != nil {
		return err
	}

	distance, err := c.prompter.Ask(Question{
		Intro:    distanceIntro,
		Prompt:   promptDistance,
		Validate: nonEmpty(workout.ValidateDistance),
		Rejection: measurementRejection(
			"Invalid distance. Please use the format 00.00, e.g. 23.40.",
		),
	})
	if err != nil {
		return err
	}

	c.printer.Paced(colorText, msgDataUpdating)
	record := workout.NewRecord(c.now(), duration, distance)
	if err := c.workbooks.AppendRecord(ctx, username, workoutType, record); err != nil {
		return fmt.Errorf("append %s record: %w", workoutType.DisplayName(), err)
	}

	c.metrics.CounterWorkoutsLogged.WithLabelValues(workoutType.String()).Inc()
	log.Debugf("user [%s] logged a %s workout", username, workoutType.DisplayName())
	c.printer.Paced(colorSuccess, fmt.Sprintf("%s worksheet updated successfully.", workoutType.SheetTitle()))

	return nil
}

// measurementRejection keeps empty answers silent.
func measurementRejection(msg string) func(string, error) string {
	return func(_ string, err error) string {
		if errors.Is(err, errEmptyInput) {
			return ""
		}
		return msg
	}
}

func (c *Controller) readColumns(ctx context.Context, username string, workoutType workout.Type) (map[workout.Column][]string, error) {
	columns := make(map[workout.Column][]string, len(workout.Columns()))
	for _, column := range workout.Columns() {
		values, err := c.workbooks.ReadColumn(ctx, username, workoutType, column)
		if err != nil {
			return nil, fmt.Errorf("read %s column %s: %w", workoutType.DisplayName(), column.Letter(), err)
		}
		columns[column] = values
	}
	return columns, nil
}

// showHistory renders every logged record of the chosen workout type.
func (c *Controller) showHistory(ctx context.Context, username string) error {
	workoutType, err := c.askWorkoutType(historyMenu)
	if err != nil {
		return err
	}

	columns, err := c.readColumns(ctx, username, workoutType)
	if err != nil {
		return err
	}

	rows := 0
	for _, values := range columns {
		rows = max(rows, len(values))
	}
	if rows <= 1 {
		c.printer.Paced(colorText, fmt.Sprintf("You haven't logged any %s workouts yet.", workoutType.DisplayName()))
		return nil
	}

	dates := pkg.PadRight(columns[workout.ColumnDate], rows)
	durations := pkg.PadRight(columns[workout.ColumnDuration], rows)
	distances := pkg.PadRight(columns[workout.ColumnDistance], rows)

	// index 0 holds the header row
	data := make([][]string, 0, rows-1)
	for i := 1; i < rows; i++ {
		data = append(data, []string{dates[i], durations[i], distances[i]})
	}

	c.printer.Paced(colorName, fmt.Sprintf("Your %s workouts:", workoutType.DisplayName()))
	table := tablewriter.NewWriter(c.printer.out)
	table.SetHeader(workout.Header)
	table.AppendBulk(data)
	table.Render()

	return nil
}

// showAverages prints the average duration and distance of the last three
// workouts of the chosen type, or of what exists when there are fewer.
func (c *Controller) showAverages(ctx context.Context, username string) error {
	workoutType, err := c.askWorkoutType(averagesMenu)
	if err != nil {
		return err
	}

	durations, err := c.workbooks.ReadColumn(ctx, username, workoutType, workout.ColumnDuration)
	if err != nil {
		return fmt.Errorf("read %s durations: %w", workoutType.DisplayName(), err)
	}
	distances, err := c.workbooks.ReadColumn(ctx, username, workoutType, workout.ColumnDistance)
	if err != nil {
		return fmt.Errorf("read %s distances: %w", workoutType.DisplayName(), err)
	}

	avgDuration, ok, err := workout.AverageDuration(durations)
	if err != nil {
		return fmt.Errorf("average %s duration: %w", workoutType.DisplayName(), err)
	}
	if !ok {
		c.printer.Paced(colorText, fmt.Sprintf("You haven't logged any %s workouts yet.", workoutType.DisplayName()))
		return nil
	}
	avgDistance, _, err := workout.AverageDistance(distances)
	if err != nil {
		return fmt.Errorf("average %s distance: %w", workoutType.DisplayName(), err)
	}

	if len(durations) <= 3 {
		c.printer.Paced(colorText, fmt.Sprintf(
			"You haven't logged three %s workouts yet, but here's your existing data anyway!",
			workoutType.DisplayName(),
		))
	} else {
		c.printer.Paced(colorText, fmt.Sprintf(
			"Here are your average scores from your last three %s workouts:",
			workoutType.DisplayName(),
		))
	}

	c.printer.Paced(colorName, fmt.Sprintf("Average duration: %s", avgDuration))
	c.printer.Paced(colorName, fmt.Sprintf("Average distance: %.2f km", avgDistance))

	return nil
}
