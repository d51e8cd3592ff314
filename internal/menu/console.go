package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Run — консольный цикл: печатает меню, читает строки до выхода или EOF.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *Session) error {
	if _, err := fmt.Fprintln(out, s.Start()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}

		reply, done := s.Handle(scanner.Text())
		if _, err := fmt.Fprintln(out, reply); err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return nil
}
