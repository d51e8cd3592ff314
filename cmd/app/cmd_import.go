package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"book_catalog/internal/parser"
	"book_catalog/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import [file.html]",
	Short: "Добавить книги из HTML-таблицы",
	Long: `Читает HTML-файл и добавляет в каталог каждую строку таблицы
вида <tr><td>название</td><td>автор</td><td>год</td></tr>.

Строки с некорректными данными пропускаются и попадают в лог.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("не удалось открыть %s: %w", args[0], err)
		}
		defer f.Close()

		rows, err := parser.ParseBookTable(f)
		if err != nil {
			return err
		}

		added, rejected, err := importRows(lib, rows)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Добавлено книг: %d, пропущено: %d\n", added, rejected)
		return nil
	},
}

// importRows добавляет строки по одной. Ошибка записи прерывает импорт,
// уже добавленные книги остаются в каталоге.
func importRows(lib *service.Library, rows []parser.Row) (added, rejected int, err error) {
	for _, row := range rows {
		res, err := lib.AddBook(row.Title, row.Author, row.Year)
		if err != nil {
			return added, rejected, err
		}
		if res.Outcome != service.Success {
			rejected++
			logger.Warn("row rejected",
				zap.Int("row", row.Index),
				zap.String("title", row.Title),
				zap.String("reason", res.Message))
			continue
		}
		added++
	}
	return added, rejected, nil
}
