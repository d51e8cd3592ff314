package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// readLines читает файл построчно. Пустые строки пропускаются.
// fn получает номер строки (с 1) и её содержимое.
func readLines(path string, fn func(num int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	num := 0
	for scanner.Scan() {
		num++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(num, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	return nil
}

// writeLines полностью перезаписывает файл: сначала во временный файл
// рядом с целевым, затем rename. Частично записанный файл не остаётся.
func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	return nil
}
