package storage

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"book_catalog/internal/models"
)

// ErrNotFound — книги с таким id нет в каталоге.
var ErrNotFound = errors.New("книга не найдена")

// Catalog keeps the whole catalog in memory, sorted by id, and rewrites the
// backing file after every successful change. It is not safe for concurrent use.
type Catalog struct {
	path   string
	books  []models.Book
	logger *zap.Logger
}

func NewCatalog(path string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		path:   path,
		logger: logger.With(zap.String("file", path)),
	}
}

func (c *Catalog) Path() string {
	return c.path
}

func (c *Catalog) Len() int {
	return len(c.books)
}

// Load заменяет содержимое каталога данными из файла.
// Отсутствующий файл — это пустой каталог. Любая битая строка прерывает загрузку.
func (c *Catalog) Load() error {
	var books []models.Book
	err := readLines(c.path, func(num int, line string) error {
		b, err := models.Decode(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", c.path, num, err)
		}
		books = append(books, b)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Debug("backing file missing, starting with empty catalog")
		c.books = nil
		return nil
	}
	if err != nil {
		return err
	}

	sortByID(books)
	c.books = books
	c.logger.Debug("catalog loaded", zap.Int("books", len(books)))
	return nil
}

// Save перезаписывает файл целиком.
func (c *Catalog) Save() error {
	sortByID(c.books)
	lines := make([]string, 0, len(c.books))
	for _, b := range c.books {
		lines = append(lines, models.Encode(b))
	}
	if err := writeLines(c.path, lines); err != nil {
		return err
	}
	c.logger.Debug("catalog saved", zap.Int("books", len(c.books)))
	return nil
}

// GenerateID returns the smallest positive id not used by any book.
func (c *Catalog) GenerateID() int {
	used := make(map[int]struct{}, len(c.books))
	for _, b := range c.books {
		used[b.ID] = struct{}{}
	}
	id := 1
	for {
		if _, ok := used[id]; !ok {
			return id
		}
		id++
	}
}

func (c *Catalog) AddBook(title, author string, year int) (models.Book, error) {
	book := models.Book{
		ID:     c.GenerateID(),
		Title:  title,
		Author: author,
		Year:   year,
		Status: models.StatusAvailable,
	}

	prev := c.books
	c.books = append(slices.Clone(prev), book)
	if err := c.Save(); err != nil {
		c.books = prev
		return models.Book{}, err
	}

	c.logger.Info("book added", zap.Int("id", book.ID), zap.String("title", title))
	return book, nil
}

func (c *Catalog) DeleteBook(id int) (models.Book, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return models.Book{}, ErrNotFound
	}

	prev := c.books
	removed := prev[idx]
	c.books = slices.Delete(slices.Clone(prev), idx, idx+1)
	if err := c.Save(); err != nil {
		c.books = prev
		return models.Book{}, err
	}

	c.logger.Info("book deleted", zap.Int("id", id))
	return removed, nil
}

// SearchBooks ищет без учёта регистра по подстроке в названии или авторе,
// либо по точному совпадению года.
func (c *Catalog) SearchBooks(query string) []models.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	found := []models.Book{}
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.Author), query) ||
			query == strconv.Itoa(b.Year) {
			found = append(found, b)
		}
	}
	return found
}

// Books returns a copy of the catalog in id order.
func (c *Catalog) Books() []models.Book {
	return slices.Clone(c.books)
}

func (c *Catalog) Find(id int) (models.Book, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return models.Book{}, false
	}
	return c.books[idx], true
}

// UpdateStatus меняет статус книги. Если статус уже такой, файл не трогается
// и changed == false.
func (c *Catalog) UpdateStatus(id int, status models.Status) (book models.Book, changed bool, err error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return models.Book{}, false, ErrNotFound
	}
	if c.books[idx].Status == status {
		return c.books[idx], false, nil
	}

	old := c.books[idx].Status
	c.books[idx].Status = status
	if err := c.Save(); err != nil {
		c.books[idx].Status = old
		return models.Book{}, false, err
	}

	c.logger.Info("book status updated", zap.Int("id", id), zap.Stringer("status", status))
	return c.books[idx], true, nil
}

func (c *Catalog) indexOf(id int) int {
	return slices.IndexFunc(c.books, func(b models.Book) bool { return b.ID == id })
}

func sortByID(books []models.Book) {
	slices.SortFunc(books, func(a, b models.Book) int { return cmp.Compare(a.ID, b.ID) })
}
