package menu

import (
	"strings"

	"go.uber.org/zap"

	"book_catalog/internal/service"
)

type state int

const (
	stateMain state = iota
	stateAddTitle
	stateAddAuthor
	stateAddYear
	stateDeleteID
	stateSearchQuery
	stateUpdateID
	stateUpdateChoice
)

// Пункты главного меню.
const (
	ChoiceAdd    = "1"
	ChoiceDelete = "2"
	ChoiceSearch = "3"
	ChoiceList   = "4"
	ChoiceStatus = "5"
	ChoiceExit   = "6"
)

const (
	promptTitle    = "Введите название книги:"
	promptAuthor   = "Введите автора книги:"
	promptYear     = "Введите год издания:"
	promptDelete   = "Введите ID книги для удаления:"
	promptSearch   = "Введите название, автора или год для поиска:"
	promptUpdateID = "Введите ID книги для изменения статуса:"
	promptChoice   = "Выберите новый статус (1-2):"

	msgBadChoice = "Некорректный выбор. Попробуйте снова."
	msgBye       = "Выход из приложения."
	msgIOError   = "Ошибка при сохранении данных, изменения не применены."
)

// MenuText — главное меню.
func MenuText() string {
	return strings.Join([]string{
		"\n" + strings.Repeat("-", 11) + "МЕНЮ" + strings.Repeat("-", 11),
		ChoiceAdd + " - Добавить книгу",
		ChoiceDelete + " - Удалить книгу",
		ChoiceSearch + " - Искать книгу",
		ChoiceList + " - Отобразить все книги",
		ChoiceStatus + " - Изменить статус книги",
		ChoiceExit + " - Выход",
		"Выберите действие (1-6):",
	}, "\n")
}

// Session is one conversation with the catalog: it receives the user's lines
// one at a time and answers with the text to show next. Each finished
// operation runs exactly one call on the Library.
type Session struct {
	lib    *service.Library
	logger *zap.Logger

	state  state
	title  string
	author string
	bookID string
}

func NewSession(lib *service.Library, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{lib: lib, logger: logger}
}

// Start сбрасывает диалог и возвращает главное меню.
func (s *Session) Start() string {
	s.reset()
	return MenuText()
}

// AtMenu reports whether the session waits for a menu choice.
func (s *Session) AtMenu() bool {
	return s.state == stateMain
}

// Handle обрабатывает одну строку ввода. done == true, когда выбран выход.
func (s *Session) Handle(line string) (reply string, done bool) {
	line = strings.TrimSpace(line)

	switch s.state {
	case stateMain:
		return s.handleChoice(line)

	case stateAddTitle:
		s.title = line
		s.state = stateAddAuthor
		return promptAuthor, false

	case stateAddAuthor:
		s.author = line
		s.state = stateAddYear
		return promptYear, false

	case stateAddYear:
		res, err := s.lib.AddBook(s.title, s.author, line)
		return s.finish(res, err), false

	case stateDeleteID:
		res, err := s.lib.DeleteBook(line)
		return s.finish(res, err), false

	case stateSearchQuery:
		return s.finish(s.lib.SearchBooks(line), nil), false

	case stateUpdateID:
		res := s.lib.FindBook(line)
		if res.Outcome != service.Success {
			return s.finish(res, nil), false
		}
		s.bookID = line
		s.state = stateUpdateChoice
		return service.StatusChoices() + "\n" + promptChoice, false

	case stateUpdateChoice:
		res, err := s.lib.UpdateStatus(s.bookID, line)
		return s.finish(res, err), false
	}

	s.reset()
	return MenuText(), false
}

func (s *Session) handleChoice(choice string) (string, bool) {
	switch choice {
	case ChoiceAdd:
		s.state = stateAddTitle
		return promptTitle, false
	case ChoiceDelete:
		s.state = stateDeleteID
		return promptDelete, false
	case ChoiceSearch:
		s.state = stateSearchQuery
		return promptSearch, false
	case ChoiceList:
		return s.finish(s.lib.ListBooks(nil), nil), false
	case ChoiceStatus:
		s.state = stateUpdateID
		return promptUpdateID, false
	case ChoiceExit:
		s.reset()
		return msgBye, true
	}
	return msgBadChoice + "\n" + MenuText(), false
}

// finish показывает результат операции и возвращает в главное меню.
func (s *Session) finish(res service.Result, err error) string {
	s.reset()
	if err != nil {
		s.logger.Error("catalog operation failed", zap.Error(err))
		return msgIOError + "\n" + MenuText()
	}
	s.logger.Debug("operation finished", zap.Stringer("outcome", res.Outcome))
	return res.Message + "\n" + MenuText()
}

func (s *Session) reset() {
	s.state = stateMain
	s.title = ""
	s.author = ""
	s.bookID = ""
}
