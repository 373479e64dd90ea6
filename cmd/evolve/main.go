package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stringEvolution/internal/config"
)

// configError отмечает ошибки конфигурации (код выхода 2).
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
		stop()
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, "Ошибка:", err)
	stop()
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evolve",
		Short:         "Эволюционный поиск строки по расстоянию Левенштейна",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "путь к YAML-файлу конфигурации")
	root.PersistentFlags().String("log-level", "", "уровень логирования: debug | info | warn | error")
	root.PersistentFlags().String("log-format", "", "формат логов: text | json")

	root.AddCommand(newRunCmd(), newBenchCmd())
	return root
}

// loadConfig читает файл из --config (если задан) и применяет общие флаги.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	cfg := config.Default()
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		f, err := config.Load(path)
		if err != nil {
			return config.File{}, configError{err}
		}
		cfg = f
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	return cfg, nil
}
