package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Status — состояние доступности книги. Значений ровно два.
type Status int

const (
	StatusAvailable Status = iota
	StatusCheckedOut
)

const (
	statusAvailableToken  = "available"
	statusCheckedOutToken = "checked_out"

	// Метки, которые писала в файл старая версия программы.
	legacyAvailableLabel  = "в наличии"
	legacyCheckedOutLabel = "выдана"
)

// String возвращает токен, который пишется в файл.
func (s Status) String() string {
	if s == StatusCheckedOut {
		return statusCheckedOutToken
	}
	return statusAvailableToken
}

// Label — человекочитаемая подпись для меню.
func (s Status) Label() string {
	if s == StatusCheckedOut {
		return legacyCheckedOutLabel
	}
	return legacyAvailableLabel
}

// ParseStatus accepts the canonical file tokens and the legacy localized labels.
func ParseStatus(token string) (Status, bool) {
	switch strings.TrimSpace(token) {
	case statusAvailableToken, legacyAvailableLabel:
		return StatusAvailable, true
	case statusCheckedOutToken, legacyCheckedOutLabel:
		return StatusCheckedOut, true
	}
	return StatusAvailable, false
}

// Book — одна запись каталога.
type Book struct {
	ID     int
	Title  string
	Author string
	Year   int
	Status Status
}

// String — строка для вывода списка в консоль.
func (b Book) String() string {
	return fmt.Sprintf("| ID: %d | Название: %s, Автор: %s, Год: %d, Статус: %s",
		b.ID, b.Title, b.Author, b.Year, b.Status.Label())
}

const (
	fieldSeparator = ";"
	fieldCount     = 5
)

// ParseError is returned by Decode for a line that is not a valid record.
type ParseError struct {
	Line   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("некорректная запись %q: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("некорректная запись %q: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Encode превращает книгу в строку формата "id;title;author;year;status".
// Разделитель внутри полей не экранируется.
func Encode(b Book) string {
	return strings.Join([]string{
		strconv.Itoa(b.ID),
		b.Title,
		b.Author,
		strconv.Itoa(b.Year),
		b.Status.String(),
	}, fieldSeparator)
}

// Decode разбирает строку, записанную Encode.
func Decode(line string) (Book, error) {
	line = strings.TrimSpace(line)
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < fieldCount {
		return Book{}, &ParseError{Line: line, Reason: fmt.Sprintf("ожидалось %d полей, получено %d", fieldCount, len(parts))}
	}
	if len(parts) > fieldCount {
		return Book{}, &ParseError{Line: line, Reason: fmt.Sprintf("лишние поля (%d), вероятно ';' внутри названия или автора", len(parts))}
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Book{}, &ParseError{Line: line, Reason: "id не число", Err: err}
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return Book{}, &ParseError{Line: line, Reason: "год не число", Err: err}
	}
	status, ok := ParseStatus(parts[4])
	if !ok {
		return Book{}, &ParseError{Line: line, Reason: fmt.Sprintf("неизвестный статус %q", parts[4])}
	}

	return Book{
		ID:     id,
		Title:  parts[1],
		Author: parts[2],
		Year:   year,
		Status: status,
	}, nil
}
