package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/calendarapi"
	"github.com/m04kA/SMC-CalendarService/internal/tui"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type rootOptions struct {
	API        string
	LocationID int64
	Date       string
	PrefsPath  string
	LogFile    string
	LogLevel   string
	Timeout    time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "calendar-tui",
		Short: "Дневной календарь салона в терминале",
		Example: `
calendar-tui --location 1
calendar-tui --api http://calendar.local:8080 --location 1 --date 2025-03-10
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}

	cmd.PersistentFlags().StringVar(&o.PrefsPath, "prefs", tui.DefaultPreferencesPath,
		"Файл настроек интерфейса.")
	cmd.Flags().StringVar(&o.API, "api", "http://localhost:8080",
		"Адрес сервиса календаря.")
	cmd.Flags().Int64Var(&o.LocationID, "location", 0,
		"Идентификатор салона.")
	cmd.Flags().StringVar(&o.Date, "date", "",
		"День в формате YYYY-MM-DD, по умолчанию сегодня.")
	cmd.Flags().StringVar(&o.LogFile, "log", "",
		"Файл журнала, без него журнал не ведётся.")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "info",
		"Уровень журнала (debug, info, warn, error).")
	cmd.Flags().DurationVar(&o.Timeout, "timeout", 10*time.Second,
		"Таймаут запросов к сервису.")
	_ = cmd.MarkFlagRequired("location")

	addPrefsCommand(cmd, o)
	return cmd
}

func addPrefsCommand(topLevel *cobra.Command, o *rootOptions) {
	prefs := &cobra.Command{
		Use:   "prefs",
		Short: "Настройки интерфейса",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Записать настройки по умолчанию",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tui.SavePreferences(o.PrefsPath, tui.DefaultPreferences()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "настройки записаны в %s\n", o.PrefsPath)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Показать действующие настройки",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := tui.LoadPreferences(o.PrefsPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", p)
			return nil
		},
	}

	prefs.AddCommand(initCmd, showCmd)
	topLevel.AddCommand(prefs)
}

func run(o *rootOptions) error {
	// stdout занят интерфейсом, журнал пишется только в файл
	var out io.Writer = io.Discard
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.NewWriter(out, o.LogLevel)

	prefs, err := tui.LoadPreferences(o.PrefsPath)
	if err != nil {
		return err
	}

	date := time.Now()
	if o.Date != "" {
		date, err = time.ParseInLocation(domain.DateFormat, o.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", o.Date, err)
		}
	}

	client := calendarapi.NewClient(o.API, o.Timeout, log)
	model := tui.New(tui.Options{
		Client:     client,
		LocationID: o.LocationID,
		Date:       date,
		Prefs:      prefs,
		Logger:     log,
	})

	log.Info("calendar-tui: location %d, date %s, api %s", o.LocationID, date.Format(domain.DateFormat), o.API)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
