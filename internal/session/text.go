package session

const (
	welcomeText = "\n" +
		"Welcome to Unstoppable UT2, where you can keep track of your UT2 performance.\n" +
		"In case you're unfamiliar with the term 'UT2', it refers to an aerobic workout\n" +
		"at an intensity which can be held for the full workout duration.\n" +
		"You should be comfortable enough to speak and be operating at 65-75% maximum\n" +
		"heart rate.\n" +
		"The workout should last approximately 60 minutes.\n"

	usernameIntro = "Please type your username below.\n" +
		"It must contain a minimum of five characters.\n" +
		"It must contain only lowercase letters, no spaces, no numbers and\n" +
		"no special characters or symbols."
	passwordIntro = "Please type your password below.\n" +
		"It must contain a minimum of five characters.\n" +
		"It must contain only lowercase letters, no spaces, no numbers and\n" +
		"no special characters or symbols."

	durationIntro = "Input your workout duration below.\n" +
		"Your time should be entered in this format - 00:00:00\n" +
		"E.g. if your workout was an hour and twenty minutes long, you would enter 01:20:00.\n" +
		"Your value for hours must be less than 24. Your value for minutes must be less than 60.\n" +
		"Your value for seconds must be less than 60."
	distanceIntro = "Input your distance covered in kilometres below.\n" +
		"Your distance should be entered in this format - 00.00\n" +
		"E.g. if you cycled 23.4km on the exercise bike, you would enter 23.40"

	logWorkoutMenu = "What kind of workout would you like to log today?\n" +
		"1. Treadmill\n" +
		"2. Rowing Ergometer\n" +
		"3. Exercise Bike"
	historyMenu = "Type 1 to view your treadmill workout data.\n" +
		"Type 2 to view your rowing ergometer data.\n" +
		"Type 3 to view your exercise bike data."
	averagesMenu = "Type 1 to view your average treadmill workout data.\n" +
		"Type 2 to view your average rowing ergometer data.\n" +
		"Type 3 to view your average exercise bike data."
	actionMenu = "1. Log a new workout\n" +
		"2. View the data from previous workouts\n" +
		"3. View your average scores from your last three workouts"

	promptUserKind     = "Type 1 if you are a new user, or type 2 if you are an existing user: "
	promptUsername     = "Please type your username here: "
	promptPassword     = "Please type your password here: "
	promptChoice       = "Type 1, 2 or 3 to choose one of the above: "
	promptDuration     = "Please input your workout duration here: "
	promptDistance     = "Please input your workout distance here: "
	promptUnknownUser  = "Type 1 to enter a new username or press Enter to try again: "
	promptRunAgain     = "Type 1 to run the program again or 2 to leave Unstoppable UT2 for today: "
	msgInvalidChoice   = "Invalid choice. Please try again."
	msgUsernameTaken   = "Username already exists. Please select a different one."
	msgUsernameUnknown = "Username not found."
	msgWrongPassword   = "Incorrect password. Please try again."
	msgUserAdded       = "User added successfully!"
	msgDataUpdating    = "Thank you! Your UT2 Tracker data is being updated."
	msgNotShared       = "Email address not found in the environment variables, your workbook was not shared."
	msgGoodbye         = "Thanks for training with Unstoppable UT2, see you next time!"
)
