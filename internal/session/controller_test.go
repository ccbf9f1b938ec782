package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/2beens/ut2tracker/internal/auth"
	"github.com/2beens/ut2tracker/internal/store"
	"github.com/2beens/ut2tracker/internal/telemetry/metrics"
	"github.com/2beens/ut2tracker/internal/workout"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, time.October, 19, 7, 30, 0, 0, time.UTC)

type testSession struct {
	store   *store.TestStore
	metrics *metrics.Manager
	out     *bytes.Buffer
}

func newTestSession(shareEmail string) *testSession {
	return &testSession{
		store:   store.NewTestStore(shareEmail),
		metrics: metrics.NewTestManager(),
		out:     &bytes.Buffer{},
	}
}

func (s *testSession) run(t *testing.T, lines ...string) string {
	t.Helper()

	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	c := NewController(NewControllerParams{
		Auth:      auth.NewService(s.store, false),
		Workbooks: s.store,
		In:        strings.NewReader(input),
		Out:       s.out,
		Metrics:   s.metrics,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, c.Run(context.Background()))
	return s.out.String()
}

func (s *testSession) seedUser(t *testing.T, username, password string, records map[workout.Type][]workout.Record) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.store.AddUser(ctx, username, password))
	_, err := s.store.CreateWorkbook(ctx, username)
	require.NoError(t, err)
	for wt, recs := range records {
		for _, r := range recs {
			require.NoError(t, s.store.AppendRecord(ctx, username, wt, r))
		}
	}
}

func TestController_Run_EOFQuits(t *testing.T) {
	s := newTestSession("")
	output := s.run(t)

	assert.Contains(t, output, "Welcome to Unstoppable UT2")
	assert.Contains(t, output, promptUserKind)
}

func TestController_Run_RegisterNewUser(t *testing.T) {
	s := newTestSession("coach@example.com")
	output := s.run(t,
		"1",        // new user
		"alice",    // username
		"passw",    // password
		"1",        // treadmill
		"00:30:00", // duration
		"05.00",    // distance
		"2",        // leave
	)

	assert.Contains(t, output, msgUserAdded)
	assert.Contains(t, output, "Thanks for signing up alice!")
	assert.Contains(t, output, "shared with coach@example.com")
	assert.Contains(t, output, msgDataUpdating)
	assert.Contains(t, output, "Treadmill worksheet updated successfully.")
	assert.Contains(t, output, msgGoodbye)

	assert.Equal(t, [][]string{{"alice", "passw"}}, s.store.Credentials())

	ctx := context.Background()
	dates, err := s.store.ReadColumn(ctx, "alice", workout.Treadmill, workout.ColumnDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "19-10-2026"}, dates)
	durations, err := s.store.ReadColumn(ctx, "alice", workout.Treadmill, workout.ColumnDuration)
	require.NoError(t, err)
	assert.Equal(t, []string{"Duration", "00:30:00"}, durations)
	distances, err := s.store.ReadColumn(ctx, "alice", workout.Treadmill, workout.ColumnDistance)
	require.NoError(t, err)
	assert.Equal(t, []string{"Distance", "05.00"}, distances)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterRegistrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterWorkoutsLogged.WithLabelValues("Treadmill")))
}

func TestController_Run_RegisterWithoutShareEmail(t *testing.T) {
	s := newTestSession("")
	output := s.run(t, "1", "alice", "passw", "3", "01:00:00", "23.40", "2")

	assert.Contains(t, output, msgNotShared)
	assert.Contains(t, output, "Exercise Bike worksheet updated successfully.")
}

func TestController_Run_RegisterDuplicateUsername(t *testing.T) {
	s := newTestSession("")
	s.seedUser(t, "alice", "secret", nil)

	output := s.run(t,
		"1",
		"alice", // taken
		"bobby",
		"passw",
		"2", "00:45:00", "09.10",
		"2",
	)

	assert.Contains(t, output, msgUsernameTaken)
	// the password is only asked for once, after a unique username
	assert.Equal(t, 1, strings.Count(output, promptPassword))
	assert.Equal(t, [][]string{{"alice", "secret"}, {"bobby", "passw"}}, s.store.Credentials())
}

func TestController_Run_RegisterInvalidCredentials(t *testing.T) {
	s := newTestSession("")
	output := s.run(t,
		"1",
		"abc",    // too short
		"Alice1", // not lowercase
		"alice",
		"passw",
		"1", "00:30:00", "05.00",
		"2",
	)

	assert.Contains(t, output, "Username must contain a minimum of 5 characters.")
	assert.Contains(t, output, "Username must contain only lowercase letters")
	assert.Equal(t, [][]string{{"alice", "passw"}}, s.store.Credentials())
}

func TestController_Run_LogWorkoutValidation(t *testing.T) {
	s := newTestSession("")
	output := s.run(t,
		"1", "alice", "passw",
		"4", // not a workout type, silently re-prompted
		"2",
		"",         // empty, silent
		"25:00:00", // hours out of range
		"01:20:00",
		"1.5", // wrong format
		"12.50",
		"2",
	)

	assert.Equal(t, 1, strings.Count(output, "Invalid duration."))
	assert.Equal(t, 1, strings.Count(output, "Invalid distance."))
	assert.Equal(t, 3, strings.Count(output, promptDuration))
	assert.Contains(t, output, "Rowing Ergometer worksheet updated successfully.")

	durations, err := s.store.ReadColumn(context.Background(), "alice", workout.RowingErgometer, workout.ColumnDuration)
	require.NoError(t, err)
	assert.Equal(t, []string{"Duration", "01:20:00"}, durations)
}

func TestController_Run_LoginWrongThenRightPassword(t *testing.T) {
	s := newTestSession("")
	s.seedUser(t, "alice", "passw", nil)

	output := s.run(t,
		"2",
		"alice", "wrong",
		"alice", "passw",
		"1", // log a workout
		"2", "01:00:00", "12.50",
		"2",
	)

	assert.Contains(t, output, msgWrongPassword)
	assert.Contains(t, output, "Welcome back alice!")
	assert.Contains(t, output, "Rowing Ergometer worksheet updated successfully.")
	assert.Equal(t, [][]string{{"alice", "passw"}}, s.store.Credentials())

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterLogins.WithLabelValues("wrong_password")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterLogins.WithLabelValues("ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.CounterRegistrations))
}

func TestController_Run_LoginUnknownUser(t *testing.T) {
	s := newTestSession("")
	s.seedUser(t, "alice", "passw", nil)

	output := s.run(t,
		"2",
		"bobby", // unknown
		"",      // try again
		"carol", // unknown
		"1",     // back to the new/existing choice
		"2",
		"alice", "passw",
		"3", "1", // averages, treadmill
		"2",
	)

	assert.Equal(t, 2, strings.Count(output, msgUsernameUnknown))
	assert.Equal(t, 2, strings.Count(output, promptUserKind))
	assert.Contains(t, output, "You haven't logged any treadmill workouts yet.")
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.CounterLogins.WithLabelValues("unknown_user")))
}

func TestController_Run_LoginCreatesMissingWorkbook(t *testing.T) {
	s := newTestSession("")
	require.NoError(t, s.store.AddUser(context.Background(), "alice", "passw"))

	output := s.run(t, "2", "alice", "passw", "1", "1", "00:30:00", "05.00", "2")

	assert.Contains(t, output, msgNotShared)
	assert.Contains(t, output, "Treadmill worksheet updated successfully.")
}

func TestController_Run_Averages(t *testing.T) {
	records := func(durations, distances []string) []workout.Record {
		var recs []workout.Record
		for i := range durations {
			recs = append(recs, workout.NewRecord(testNow, durations[i], distances[i]))
		}
		return recs
	}

	testCases := []struct {
		name            string
		records         []workout.Record
		expectedMessage string
		expectedLines   []string
	}{
		{
			name:            "no workouts",
			expectedMessage: "You haven't logged any treadmill workouts yet.",
		},
		{
			name:            "fewer than three",
			records:         records([]string{"00:20:00", "00:40:00"}, []string{"20.00", "30.00"}),
			expectedMessage: "You haven't logged three treadmill workouts yet, but here's your existing data anyway!",
			expectedLines:   []string{"Average duration: 0:30:00", "Average distance: 25.00 km"},
		},
		{
			name: "last three",
			records: records(
				[]string{"00:20:00", "00:30:00", "00:40:00", "00:50:00"},
				[]string{"04.00", "05.00", "06.00", "07.00"},
			),
			expectedMessage: "Here are your average scores from your last three treadmill workouts:",
			expectedLines:   []string{"Average duration: 0:40:00", "Average distance: 6.00 km"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession("")
			s.seedUser(t, "alice", "passw", map[workout.Type][]workout.Record{
				workout.Treadmill: tc.records,
			})

			output := s.run(t, "2", "alice", "passw", "3", "1", "2")

			assert.Contains(t, output, tc.expectedMessage)
			for _, line := range tc.expectedLines {
				assert.Contains(t, output, line)
			}
		})
	}
}

func TestController_Run_History(t *testing.T) {
	s := newTestSession("")
	s.seedUser(t, "alice", "passw", map[workout.Type][]workout.Record{
		workout.ExerciseBike: {
			workout.NewRecord(testNow.AddDate(0, 0, -1), "00:55:10", "21.30"),
			workout.NewRecord(testNow, "01:02:00", "23.40"),
		},
	})

	output := s.run(t, "2", "alice", "passw", "2", "3", "2")

	assert.Contains(t, output, "Your exercise bike workouts:")
	for _, value := range []string{"18-10-2026", "00:55:10", "21.30", "19-10-2026", "01:02:00", "23.40"} {
		assert.Contains(t, output, value)
	}
}

func TestController_Run_RemoteErrorEndsSession(t *testing.T) {
	s := newTestSession("")
	s.store.FailNext = errors.New("quota exceeded")

	output := s.run(t, "1", "alice", "passw", "2")

	assert.Contains(t, output, "An error occurred: find workbook: quota exceeded")
	assert.NotContains(t, output, "Thanks for signing up")

	found, err := s.store.FindWorkbook(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, found)
	// the credentials were written before the failure
	assert.Equal(t, [][]string{{"alice", "passw"}}, s.store.Credentials())
}

func TestController_Run_RunAgain(t *testing.T) {
	s := newTestSession("")
	s.seedUser(t, "alice", "passw", nil)

	output := s.run(t,
		"2", "alice", "passw", "3", "2",
		"7", // invalid
		"1", // again
		"2", "alice", "passw", "3", "3",
		"2",
	)

	assert.Contains(t, output, msgInvalidChoice)
	assert.Equal(t, 2, strings.Count(output, "Welcome back alice!"))
	assert.Contains(t, output, "You haven't logged any rowing ergometer workouts yet.")
	assert.Contains(t, output, "You haven't logged any exercise bike workouts yet.")
	assert.Contains(t, output, msgGoodbye)
}
