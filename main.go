package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/ultimatexo-client/internal"
	"github.com/rocketscienceinc/ultimatexo-client/internal/config"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

// main - is the entry point of the application. It parses flags, loads the configuration and runs the client.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configFlag   string
		roomFlag     string
		modeFlag     string
		nameFlag     string
		passwordFlag string
		botLevelFlag string
		publicFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "ultimatexo",
		Short: "Play Ultimate XO from the terminal",
		Long:  "Joins a room by id, or creates one when --room is empty, then reads moves and commands from stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := entity.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			botLevel, err := entity.ParseBotLevel(botLevelFlag)
			if err != nil {
				return err
			}

			if mode == entity.ModeBot && botLevel == "" {
				botLevel = entity.BotBeginner
			}

			conf := initConfig(configFlag)
			logger := initLogger(conf)

			if err = app.RunApp(logger, conf, app.Options{
				RoomID:   roomFlag,
				Mode:     mode,
				Name:     nameFlag,
				Password: passwordFlag,
				BotLevel: botLevel,
				Public:   publicFlag,
				Input:    cmd.InOrStdin(),
				Output:   cmd.OutOrStdout(),
			}); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configFlag, "config", "", "path to config.yml (default: ./config.yml)")
	cmd.Flags().StringVar(&roomFlag, "room", "", "room id to join; a new room is created when empty")
	cmd.Flags().StringVar(&modeFlag, "mode", "online", "online, local or bot")
	cmd.Flags().StringVar(&nameFlag, "name", "", "name of a created room")
	cmd.Flags().StringVar(&passwordFlag, "password", "", "room password")
	cmd.Flags().StringVar(&botLevelFlag, "bot-level", "", "Beginner, Intermediate or Advanced")
	cmd.Flags().BoolVar(&publicFlag, "public", false, "list a created room publicly")

	return cmd
}

// initialize config.
func initConfig(path string) *config.Config {
	if path != "" {
		return config.MustLoad(path)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger. Logs go to stderr, stdout belongs to the game.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
