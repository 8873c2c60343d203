package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/BloggingApp/comment-service/internal/client"
	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	if err := initConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize yaml config: %s\n", err.Error())
		os.Exit(1)
	}

	cfg := config.ClientConfig{
		BaseURL:     viper.GetString("api.base-url"),
		AccessToken: os.Getenv("BLOG_ACCESS_TOKEN"),
		Timeout:     viper.GetDuration("api.timeout"),
		PostID:      viper.GetInt64("client.post-id"),
		DateLayout:  viper.GetString("client.date-layout"),
		LogFile:     viper.GetString("client.log-file"),
	}.Normalized()

	if len(os.Args) > 1 {
		postID, err := strconv.ParseInt(os.Args[1], 10, 64)
		if err != nil || postID < 1 {
			fmt.Fprintf(os.Stderr, "invalid post id %q\n", os.Args[1])
			os.Exit(2)
		}
		cfg.PostID = postID
	}
	if cfg.PostID < 1 {
		fmt.Fprintln(os.Stderr, "no post id: set client.post-id or pass one as the first argument")
		os.Exit(2)
	}

	// the terminal belongs to the UI, so logs go to a file or nowhere
	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %s\n", err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	api := client.New(cfg, logger)
	userID, signedIn := api.CurrentUserID()
	logger.Sugar().Infof("opening post(%d), signed in: %t", cfg.PostID, signedIn)

	app := tui.NewApp(context.Background(), api, tui.Options{
		PostID:     cfg.PostID,
		Session:    tui.Session{UserID: userID, SignedIn: signedIn},
		DateLayout: cfg.DateLayout,
	}, logger)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.Sugar().Errorf("program failed: %s", err.Error())
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.OutputPaths = []string{path}
	zapConfig.ErrorOutputPaths = []string{path}
	return zapConfig.Build()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("client")
	viper.SetDefault("api.base-url", "http://localhost:8080")
	return viper.ReadInConfig()
}
