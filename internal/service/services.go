package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"book_catalog/internal/models"
	"book_catalog/internal/storage"
)

// Outcome classifies the result of one catalog operation for the shells.
type Outcome int

const (
	Success Outcome = iota
	NotFound
	InvalidInput
	NoOp
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case NoOp:
		return "no_op"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result — то, что оболочка показывает пользователю после операции.
type Result struct {
	Outcome Outcome
	Message string
	Books   []models.Book
}

// InputError — пользователь ввёл то, что нельзя превратить в аргумент операции.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Ошибка: %s %s!", e.Field, e.Reason)
}

const separatorWidth = 100

const (
	msgAdded         = "Книга успешно добавлена!"
	msgDeleted       = "Книга успешно удалена!"
	msgNotFound      = "Книга с таким ID не найдена."
	msgFound         = "Найдены книги:"
	msgNothingFound  = "Книг по запросу не найдено."
	msgEmpty         = "Библиотека пуста."
	msgStatusUpdated = "Статус книги успешно обновлен!"
	msgStatusSame    = "Книга уже имеет данный статус."
	msgInvalidChoice = "Некорректный ввод."
	msgBook          = "Книга: "
)

// Library связывает текстовый ввод оболочки с каталогом.
// Ошибки ввода никогда не выходят наружу как error: они становятся
// Result с Outcome == InvalidInput. error возвращается только при сбое записи.
type Library struct {
	catalog *storage.Catalog
	logger  *zap.Logger
}

func NewLibrary(catalog *storage.Catalog, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		catalog: catalog,
		logger:  logger,
	}
}

func (l *Library) Catalog() *storage.Catalog {
	return l.catalog
}

func (l *Library) AddBook(title, author, yearToken string) (Result, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if err := validateText("название", title); err != nil {
		return l.invalid(err), nil
	}
	if err := validateText("автор", author); err != nil {
		return l.invalid(err), nil
	}
	year, err := parseInt("год", yearToken)
	if err != nil {
		return l.invalid(err), nil
	}

	book, err := l.catalog.AddBook(title, author, year)
	if err != nil {
		return Result{}, fmt.Errorf("не удалось добавить книгу: %w", err)
	}
	return Result{Outcome: Success, Message: msgAdded, Books: []models.Book{book}}, nil
}

func (l *Library) DeleteBook(idToken string) (Result, error) {
	id, err := parseInt("ID", idToken)
	if err != nil {
		return l.invalid(err), nil
	}

	book, err := l.catalog.DeleteBook(id)
	if errors.Is(err, storage.ErrNotFound) {
		return Result{Outcome: NotFound, Message: msgNotFound}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("не удалось удалить книгу %d: %w", id, err)
	}
	return Result{Outcome: Success, Message: msgDeleted, Books: []models.Book{book}}, nil
}

func (l *Library) SearchBooks(query string) Result {
	books := l.catalog.SearchBooks(query)
	if len(books) == 0 {
		return Result{Outcome: Empty, Message: msgNothingFound, Books: books}
	}
	return Result{Outcome: Success, Message: msgFound + "\n" + Render(books), Books: books}
}

// ListBooks рендерит subset, а если он nil — весь каталог.
func (l *Library) ListBooks(subset []models.Book) Result {
	books := subset
	if books == nil {
		books = l.catalog.Books()
	}
	if len(books) == 0 {
		return Result{Outcome: Empty, Message: msgEmpty, Books: books}
	}
	return Result{Outcome: Success, Message: Render(books), Books: books}
}

// FindBook checks an id token before the shell asks for the new status.
func (l *Library) FindBook(idToken string) Result {
	id, err := parseInt("ID", idToken)
	if err != nil {
		return l.invalid(err)
	}
	book, ok := l.catalog.Find(id)
	if !ok {
		return Result{Outcome: NotFound, Message: msgNotFound}
	}
	return Result{Outcome: Success, Message: msgBook + book.String(), Books: []models.Book{book}}
}

func (l *Library) UpdateStatus(idToken, choice string) (Result, error) {
	id, err := parseInt("ID", idToken)
	if err != nil {
		return l.invalid(err), nil
	}
	status, ok := ParseStatusChoice(choice)
	if !ok {
		return Result{Outcome: InvalidInput, Message: msgInvalidChoice}, nil
	}

	book, changed, err := l.catalog.UpdateStatus(id, status)
	if errors.Is(err, storage.ErrNotFound) {
		return Result{Outcome: NotFound, Message: msgNotFound}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("не удалось изменить статус книги %d: %w", id, err)
	}
	if !changed {
		return Result{Outcome: NoOp, Message: msgStatusSame, Books: []models.Book{book}}, nil
	}
	return Result{Outcome: Success, Message: msgStatusUpdated, Books: []models.Book{book}}, nil
}

// StatusChoices — подсказка для выбора статуса, в порядке номеров.
func StatusChoices() string {
	return fmt.Sprintf("1 - %s\n2 - %s", models.StatusAvailable.Label(), models.StatusCheckedOut.Label())
}

// ParseStatusChoice понимает номер пункта (1, 2) и имя статуса из файла.
func ParseStatusChoice(choice string) (models.Status, bool) {
	switch strings.TrimSpace(choice) {
	case "1":
		return models.StatusAvailable, true
	case "2":
		return models.StatusCheckedOut, true
	case models.StatusAvailable.String():
		return models.StatusAvailable, true
	case models.StatusCheckedOut.String():
		return models.StatusCheckedOut, true
	}
	return models.StatusAvailable, false
}

// Render — список книг для вывода, как в консольном меню.
func Render(books []models.Book) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("-", separatorWidth))
	for _, b := range books {
		sb.WriteByte('\n')
		sb.WriteString(b.String())
	}
	return sb.String()
}

func (l *Library) invalid(err error) Result {
	l.logger.Debug("invalid input", zap.Error(err))
	return Result{Outcome: InvalidInput, Message: err.Error()}
}

func parseInt(field, token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, &InputError{Field: field, Reason: "должен быть числом"}
	}
	return n, nil
}

func validateText(field, value string) error {
	if value == "" {
		return &InputError{Field: field, Reason: "не может быть пустым"}
	}
	if strings.ContainsAny(value, ";\r\n") {
		return &InputError{Field: field, Reason: "не может содержать ';' или перевод строки"}
	}
	return nil
}
