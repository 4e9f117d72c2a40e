package glossary

import "github.com/masskeeper/masskeeper/internal/models"

var russian = Phrases{
	Language: models.LanguageRussian,

	Hello: "Привет, я бот для отслеживания веса тела. Помогу тебе достичь фитнес-целей. " +
		"Выбери команду ниже.\n\n",
	CommandList: "/enter_weight - ввести текущий вес\n\n" +
		"/plot - график (2 недели) \n" +
		"/plot_all - график (всё время) \n" +
		"/download - скачать данные (*.csv) \n" +
		"/upload - загрузить данные (*.csv)\n" +
		"/erase - стереть все данные \n" +
		"/challenge - начать / посмотреть челлендж\n" +
		"/clear_challenge - отключить челлендж\n\n" +
		"/start - показать меню \n\n" +
		"/info - информация и советы по использованию бота\n" +
		"/language - change language",
	Info: "Этот бот отслеживает вес тела и поможет тебе на твоём фитнес-пути. " +
		"Просто регулярно взвешивайся и присылай мне результаты.\n\n" +
		"Вес тела сильно колеблется день ото дня (до ~3 кг) — в основном из-за еды и задержки жидкости. " +
		"Поэтому разовые взвешивания ничего не говорят о том, сколько килограммов ткани ты набрал или потерял. " +
		"Чтобы отслеживать прогресс, нужно взвешиваться минимум <b>3 раза в неделю (в идеале — каждый день)</b> " +
		"и записывать результаты, желательно примерно в одно и то же время суток. " +
		"Спустя две недели смотри на <b>линию тренда</b> — она покажет реальную картину: " +
		"теряешь ты вес или набираешь, и с какой скоростью.\n\n" +
		"Задача этого бота — сделать процесс <b>максимально лёгким</b>. " +
		"Достань телефон и пришли мне пару цифр — проще некуда. " +
		"Помни: фитнес — это инерция привычки, и <b>чем меньше лишнего сопротивления, " +
		"тем устойчивее привычка в долгой перспективе.</b>\n\n" +
		"Ориентир: <b>0.5-1 кг в неделю</b> для <b>похудения</b> " +
		"и <b>0.2-0.5 кг в неделю</b> для <b>набора массы</b> без рисков для здоровья. " +
		"Но лучше проконсультироваться с тренером или нутрициологом — цифры зависят от пола, возраста и здоровья. ",

	EnterWeightButton:   "Ввести текущий вес",
	ShowMenuButton:      "Показать меню",
	EnterWeightCommands: []string{"/enter_weight", "Ввести текущий вес"},
	ShowMenuCommands:    []string{"/start", "Показать меню"},

	HowMuchDoYouWeigh: "Сколько ты сегодня весишь?",

	YouAreMaintaining:     "\nСейчас ты <i>поддерживаешь</i> свой вес.\n",
	YouAreSurplus:         "\nСейчас ты в <i>профиците калорий</i>.\n",
	YouAreDeficit:         "\nСейчас ты в <i>дефиците калорий</i>.\n",
	YouAreGainingTemplate: "Ты набираешь вес со средней скоростью <i>%.2f кг/неделю</i>\n",
	YouAreLosingTemplate:  "Ты теряешь вес со средней скоростью <i>%.2f кг/неделю</i>\n",
	WhichIsTooSlow:        "(что слишком медленно, чтобы считаться профицитом или дефицитом)\n",

	PleaseEnterValidPositiveNumber: "Введи корректное положительное число (вес тела в кг)\n/start - вернуться в меню",
	PleaseEnterValidDate:           "Введи корректную дату",
	SuccessfullyAddedNewEntry:      "Новая запись добавлена:",

	HerePlotLastTwoWeeks:    "Вот график твоего прогресса за последние две недели.\n",
	HerePlotOverallProgress: "Вот график твоего прогресса за всё время.\n",

	NoDataToDownloadYet: "У тебя пока нет данных для скачивания.\n\n" +
		"Используй /enter_weight каждый день. \n" +
		"Или загрузи существующие данные через /upload.",
	HereAllYourData:       "<b>Вот все твои данные.</b>",
	YouCanAnalyzeOrBackup: "Можешь проанализировать их самостоятельно или сохранить как резервную копию для /upload на случай потери данных.",

	ReplyUpload: "Ты можешь загрузить существующие данные о весе, прислав мне *.csv таблицу." +
		"Таблица должна содержать две колонки:\n" +
		"- Дата в формате ГГГГ/ММ/ДД\n" +
		"- Вес тела\n" +
		"Пример можно скачать командой /download. \n\n" +
		"Чтобы продолжить, пришли корректный *.csv файл." +
		"\n\n/start - вернуться в меню",
	NoValidDocument:          "Я не получил корректный документ.\n/start",
	FileTooBigTemplate:       "Файл слишком большой (максимум %d кб)",
	FileInvalid:              "Файл некорректный. Скачай пример корректного файла командой /download.\n/start",
	FileUnexpectedError:      "При обработке файла произошла непредвиденная ошибка. Прости.\n/start",
	DataUploadedSuccessfully: "<b>Данные успешно загружены.</b>\nВзгляни на график.",

	ConfirmationWord: "да",
	ReplyErase: "Ты собираешься <b>стереть все свои данные</b>. " +
		"Это нельзя отменить.\n\n" +
		"<b>Подтверди, написав <i>да</i></b>.\n\n" +
		"/start - вернуться",
	CancelDelete: "Ок, отменяю удаление.",
	NoDataYet:    "У тебя пока нет данных.",
	EraseComplete: "Ок, я забыл всё о твоём прогрессе.\n" +
		"Но забери файл со стёртыми данными, на всякий случай.",

	UnexpectedDocument: "Неожиданный документ. " +
		"Хочешь загрузить данные о весе? Используй команду /upload.",

	BodyweightPlotLabel: "Вес тела, кг",
	StartLabel:          "Старт",
	GoalLabel:           "Цель",

	LanguageSelected: "Язык успешно изменён на русский.\n\n/start - показать меню",

	Motivations: []string{
		"Привет! 🌟 Ты уникален, силён и находишься на невероятном пути к лучшей версии себя. Продолжай сиять и двигаться вперёд! 🏋️‍♀️💪",
		"Ага, секретная команда /notfat! 🕵️‍♂️ Так вот: ты великолепен! Твоё тело — храм, и ты заботишься о нём с любовью и упорством. Так держать! 💖",
		"Слушай внимательно! <b>Ты совершенно, неповторимо прекрасен!</b>\n\nПуть к идеальной форме — это не только цифры на весах, но и здоровье, радость и принятие себя.\n\n<b>Сделаем этот путь ещё ярче вместе! У тебя всё получится! 💪</b>",
		"Конечно нет! Ты выглядишь отлично и полон потенциала. Продолжай в том же духе!",
		"Ни капли! Ты прекрасен такой, какой есть. Продолжай стремиться к лучшей версии себя!",
		"Ничуть! Ты красив и снаружи, и внутри. Заботься о себе с любовью.",
	},

	ChallengeSummaryTemplate: "Твоя цель — достичь <b>%.2f кг</b> к <b>%s</b>.\n" +
		"Ты начал с <b>%.2f кг</b> %s.\n",
	ChallengeDesiredSpeedTemplate: "Чтобы успеть, твоя скорость должна быть <b>%.2f кг в неделю</b>.\n",
	ChallengeCurrentSpeedTemplate: "Сейчас ты движешься со скоростью <b>%.2f кг в неделю</b>.\n",
	ChallengeFooter:               "\n/start - показать меню\n/clear_challenge - отключить челлендж",
	CannotComputeSpeed:            "Не могу вычислить скорость челленджа. Пересоздай челлендж через /clear_challenge и /challenge.",
	NoActiveChallenge:             "У тебя нет активного челленджа.\n/challenge - начать",

	StartChallengeQuestion: "Начать челлендж?",
	ClearChallengeQuestion: "Отключить челлендж?",
	ConfirmationMarkup:     []string{"Да", "Нет"},
	TodayWord:              "сегодня",

	EnterStartingWeight: "Введи начальный вес",
	EnterStartingDate: "Введи дату старта в формате <b>ГГГГ/ММ/ДД</b> (например 2023/06/23) или просто напиши " +
		"\"<b>Сегодня</b>\", чтобы использовать сегодняшнюю дату",
	EnterTargetWeight: "Введи целевой вес",
	WhenDoYouWantToReachTemplate: "Когда ты хочешь достичь %.2f кг?" +
		"\nВведи дату окончания челленджа в формате <b>ГГГГ/ММ/ДД</b> (например 2023/06/23)",
	TargetDateCannotBeEarlierTemplate: "Дата цели не может быть раньше даты старта (%s). \nПопробуй ещё раз",

	PleaseConfirm:             "Подтверди (\"да\"):",
	YouWantToLoseTemplate:     "Ты хочешь похудеть с %g кг до %g кг.",
	YouWantToGainTemplate:     "Ты хочешь набрать вес с %g кг до %g кг.",
	YouWantToMaintain:         "Ты хочешь поддерживать вес.",
	YouStartAndFinishTemplate: "Ты начинаешь %s и заканчиваешь %s.",
	ChallengeWillLastTemplate: "Твой челлендж продлится %d дней.",
	DesiredSpeedTemplate:      "Тебе нужно двигаться со скоростью %.2f кг в неделю, чтобы достичь цели.",

	ChallengeDisabled: "Челлендж отключён.\n/start - показать меню\n/challenge - начать новый",
	ActionCancelled:   "Действие отменено.\n/start - показать меню",
	ChallengeCreated:  "Челлендж успешно создан\n/start - вернуться в меню",

	YesCancelMarkup: []string{"Да", "Отмена"},
	LanguageName:    "Русский",
}
