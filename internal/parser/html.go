package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Row — одна строка таблицы импорта. Поля как есть, без проверки:
// валидирует их уже service.Library.AddBook.
type Row struct {
	Index  int
	Title  string
	Author string
	Year   string
}

// ParseBookTable принимает HTML и возвращает строки таблиц вида
// <tr><td>название</td><td>автор</td><td>год</td>...</tr>.
// Строки заголовка (<th>) и строки с меньшим числом ячеек пропускаются.
func ParseBookTable(body io.Reader) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения HTML: %w", err)
	}

	var rows []Row

	doc.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() < 3 {
			return
		}

		rows = append(rows, Row{
			Index:  len(rows) + 1,
			Title:  cellText(cells.Eq(0)),
			Author: normalizeAuthor(cellText(cells.Eq(1))),
			Year:   cellText(cells.Eq(2)),
		})
	})

	return rows, nil
}

// cellText схлопывает пробелы и переводы строк внутри ячейки.
func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

func normalizeAuthor(text string) string {
	text = strings.Trim(text, "[]()")
	return strings.TrimSpace(text)
}
