package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"book_catalog/internal/network"
	"book_catalog/internal/telegram"
)

// botCmd отдаёт то же меню через Telegram.
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Запустить меню каталога как Telegram-бота",
	Long: `Поднимает Telegram-бота с тем же меню, что и в терминале.

Нужен TELEGRAM_TOKEN. Опционально TELEGRAM_PROXY (SOCKS5 адрес)
и TELEGRAM_ALLOWED_USERS (id пользователей через запятую).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireBot(); err != nil {
			return err
		}

		lib, err := openLibrary()
		if err != nil {
			return err
		}

		client, err := network.NewClient(cfg.TelegramProxy)
		if err != nil {
			return err
		}

		bot, err := telegram.NewBot(cfg.TelegramToken, client, lib, cfg.AllowedUsers, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("bot started", zap.String("file", cfg.DataFile), zap.Bool("proxy", cfg.TelegramProxy != ""))
		bot.Start(ctx)
		// остановка по сигналу — нормальное завершение
		logger.Info("bot stopped")
		return nil
	},
}
