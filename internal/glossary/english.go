package glossary

import "github.com/masskeeper/masskeeper/internal/models"

var english = Phrases{
	Language: models.LanguageEnglish,

	Hello: "Hello, I am a bot designed to track body weight and help you reach fitness goals. " +
		"Please select a command below.\n\n",
	CommandList: "/enter_weight - enter current weight\n\n" +
		"/plot - show plot (2 weeks) \n" +
		"/plot_all - show plot (all time) \n" +
		"/download - download data (*.csv) \n" +
		"/upload - upload data (*.csv)\n" +
		"/erase - erase all data \n" +
		"/challenge - start / view challenge\n" +
		"/clear_challenge - disable challenge\n\n" +
		"/start - show menu \n\n" +
		"/info - info and advice on how to use this bot\n" +
		"/language - сменить язык",
	Info: "This bot is designed to track body weight and will help you on your fitness journey. " +
		"Simply weigh yourself regularly and send me the results.\n\n" +
		"Your body weight highly varies from day to day (up to ~3 kg). " +
		"This happens mainly due to food and fluid retention. " +
		"So if you weigh yourself one day, then simply look at the scales the other day, unfortunately " +
		"you will not get any insights on how many kilos of tissue you actually gained or lost. " +
		"To track your progress " +
		"efficiently you need to measure your body mass at least <b>3 times a week (ideally, every day)</b> and " +
		"write down the results. " +
		"It is also recommended to weigh yourself approximately at the same hour of day. " +
		"After doing this for at least 2 weeks straight, you need to look at the " +
		"<a href=\"https://en.wikipedia.org/wiki/Trend_line_(technical_analysis)\">trend line</a>. " +
		"This way you will get a real picture of what is going on - are you losing or gaining weight, " +
		"and at what speed. \n\n" +
		"The mission of this bot is to make this process <b>as effortless as possible</b>. " +
		"Just pull out your phone and send me a couple of digits. " +
		"This is as easy as it gets. " +
		"Remember, fitness is all about building momentum, and <b>the less unnecessary " +
		"resistance you meet, the more sustainable your habits become in the long run.</b>\n\n" +
		"By the way, the general guideline is you should aim " +
		"at <b>0.5-1 kg per week</b> for <b>weight loss</b>, " +
		"and at <b>0.2-0.5 kg per week</b> for <b>bulking</b> if you want to do this without health risks. " +
		"But it is a better idea to consult a coach or nutritionist since these numbers depend " +
		"on a variety of factors (sex, age, overall health). ",

	EnterWeightButton:   "Enter current body weight",
	ShowMenuButton:      "Show menu",
	EnterWeightCommands: []string{"/enter_weight", "Enter current body weight"},
	ShowMenuCommands:    []string{"/start", "Show menu"},

	HowMuchDoYouWeigh: "How much do you weigh today?",

	YouAreMaintaining:     "\nYou are currently <i>maintaining</i> your body weight.\n",
	YouAreSurplus:         "\nYou are currently in a <i>calorie surplus</i>.\n",
	YouAreDeficit:         "\nYou are currently in a <i>calorie deficit</i>.\n",
	YouAreGainingTemplate: "You are gaining weight at an average rate of <i>%.2f kg/week</i>\n",
	YouAreLosingTemplate:  "You are losing weight at an average rate of <i>%.2f kg/week</i>\n",
	WhichIsTooSlow:        "(which is too slow to classify as a surplus or a deficit)\n",

	PleaseEnterValidPositiveNumber: "Please enter a valid positive number (your body mass in kg)\n/start - return to menu",
	PleaseEnterValidDate:           "Please enter a valid date",
	SuccessfullyAddedNewEntry:      "Successfully added a new entry:",

	HerePlotLastTwoWeeks:    "Here's a plot of your progress over the last two weeks.\n",
	HerePlotOverallProgress: "Here's a plot of your overall progress.\n",

	NoDataToDownloadYet: "You don't have any data to download yet.\n\n" +
		"Use /enter_weight daily. \n" +
		"Alternatively, use /upload to upload your existing data.",
	HereAllYourData: "<b>Here is all of your data.</b>",
	YouCanAnalyzeOrBackup: "You can either analyze it by yourself, or use it as a backup to " +
		"/upload it in case of the data loss.",

	ReplyUpload: "You can upload your existing body weight data by giving me a *.csv table." +
		"The table should contain two columns:\n" +
		"- Date in the YYYY/MM/DD format\n" +
		"- Body weight\n" +
		"You can download an example by using /download command. \n\n" +
		"To proceed with uploading, please send me a valid *.csv file." +
		"\n\n/start - return to menu",
	NoValidDocument:          "I didn't get a valid document.\n/start",
	FileTooBigTemplate:       "File is too big (max size %d kb)",
	FileInvalid:              "The file is invalid. Please use /download to get an example of a valid file.\n/start",
	FileUnexpectedError:      "Unexpected error occurred during your file processing. I'm sorry.\n/start",
	DataUploadedSuccessfully: "<b>Data has been uploaded successfully.</b>\nTake a look at the plot.",

	ConfirmationWord: "yes",
	ReplyErase: "You are about to <b>erase all of your data</b>. " +
		"This cannot be undone.\n\n" +
		"<b>Please confirm by typing <i>yes</i></b>.\n\n" +
		"/start - return",
	CancelDelete: "Ok, cancelling the deletion.",
	NoDataYet:    "You don't have any data yet.",
	EraseComplete: "Ok, I have forgotten everything about your progress.\n" +
		"But grab the file with your erased data, just in case.",

	UnexpectedDocument: "That is an unexpected document. " +
		"Do you want me to upload your body weight data? Use the /upload command.",

	BodyweightPlotLabel: "Bodyweight, kg",
	StartLabel:          "Start",
	GoalLabel:           "Goal",

	LanguageSelected: "Language has been successfully changed to English.\n\n/start - show menu",

	Motivations: []string{
		"Hey there! 🌟 You're beautifully unique, strong, and on an incredible journey towards your best self. Keep shining, keep moving, and never forget how amazing you are, just the way you are! 🏋️‍♀️💪 Let's keep getting leaner and stronger together! 🎉",
		"Ah, you used the secret /notfat command! 🕵️‍♂️ Well, let me tell you something — you're fabulous! Your body is a temple, and you're nurturing it with care and dedication. Keep up the fantastic work! 💖",
		"Listen closely! <b>You are absolutely uniquely wonderful and beautifully crafted!</b>\n\nRemember, the journey to your ideal self is not just about the numbers on the scale but about health, joy, and self-acceptance.\n\n<b>Let's make this journey even brighter and more inspiring together! You've got this! 💪</b>",
		"Absolutely not! You're looking fantastic and full of potential. Keep up the great work!",
		"Heck no! You're amazing just the way you are. Keep shining and striving for your best self!",
		"Not in the slightest! You're beautiful, both inside and out. Keep nurturing yourself with love and care.",
	},

	ChallengeSummaryTemplate: "Your goal is to reach <b>%.2f kg</b> by <b>%s</b>.\n" +
		"You started with <b>%.2f kg</b> on <b>%s</b>.\n",
	ChallengeDesiredSpeedTemplate: "To succeed, your speed should be <b>%.2f kg per week</b>.\n",
	ChallengeCurrentSpeedTemplate: "You are currently moving at a rate of <b>%.2f kg per week</b>.\n",
	ChallengeFooter:               "\n/start - show menu\n/clear_challenge - disable challenge",
	CannotComputeSpeed:            "I cannot compute the challenge speed. Please recreate the challenge with /clear_challenge and /challenge.",
	NoActiveChallenge:             "You don't have an active challenge.\n/challenge - start one",

	StartChallengeQuestion: "Start challenge?",
	ClearChallengeQuestion: "Disable challenge?",
	ConfirmationMarkup:     []string{"Yes", "No"},
	TodayWord:              "today",

	EnterStartingWeight: "Enter your starting weight",
	EnterStartingDate: "Enter starting date in format <b>YYYY/MM/DD</b> (e.g. 2023/06/23) or simply write " +
		"\"<b>Today</b>\" to use today's date",
	EnterTargetWeight: "Enter target weight",
	WhenDoYouWantToReachTemplate: "When do you want to reach %.2f kg?" +
		"\nEnter challenge end date in format <b>YYYY/MM/DD</b> (e.g. 2023/06/23)",
	TargetDateCannotBeEarlierTemplate: "Target date cannot be earlier than start date (%s). \nTry again",

	PleaseConfirm:             "Please confirm (\"yes\"):",
	YouWantToLoseTemplate:     "You want to lose weight from %g kg to %g kg.",
	YouWantToGainTemplate:     "You want to gain weight from %g kg to %g kg.",
	YouWantToMaintain:         "You want to maintain weight.",
	YouStartAndFinishTemplate: "You start on %s and finish on %s.",
	ChallengeWillLastTemplate: "Your challenge will last %d days.",
	DesiredSpeedTemplate:      "You will need to move at a rate of %.2f kg per week to achieve the goal.",

	ChallengeDisabled: "Challenge disabled.\n/start - show menu\n/challenge - start new challenge",
	ActionCancelled:   "Action cancelled.\n/start - show menu",
	ChallengeCreated:  "Challenge successfully created\n/start - return to menu",

	YesCancelMarkup: []string{"Yes", "Cancel"},
	LanguageName:    "English",
}
