package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"book_catalog/internal/config"
	"book_catalog/internal/menu"
	"book_catalog/internal/service"
	"book_catalog/internal/storage"
)

var (
	// Глобальные флаги
	verbose  bool
	dataFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Каталог домашней библиотеки",
	Long: `Хранит книги (название, автор, год, статус) в текстовом файле
и управляет ими через текстовое меню.

Без аргументов запускает интерактивное меню в терминале.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("ошибка конфигурации: %w", err)
		}
		if dataFile != "" {
			cfg.DataFile = dataFile
		}

		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		session := menu.NewSession(lib, logger)
		return menu.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), session)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-логи в stderr")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "файл каталога (по умолчанию LIBRARY_FILE или "+config.DefaultDataFile+")")

	rootCmd.AddCommand(botCmd, importCmd, listCmd, searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// openLibrary загружает каталог. Битый файл — фатальная ошибка.
func openLibrary() (*service.Library, error) {
	catalog := storage.NewCatalog(cfg.DataFile, logger)
	if err := catalog.Load(); err != nil {
		logger.Error("catalog load failed", zap.Error(err))
		return nil, fmt.Errorf("не удалось загрузить каталог: %w", err)
	}
	logger.Debug("catalog ready", zap.String("file", cfg.DataFile), zap.Int("books", catalog.Len()))
	return service.NewLibrary(catalog, logger), nil
}
