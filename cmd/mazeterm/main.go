// Command mazeterm edits and plays mazes in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/mazeshare/config"
	"github.com/beka-birhanu/mazeshare/terminal"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/gdamore/tcell/v2"
)

var (
	logFile   *os.File
	appLogger general_i.Logger
	screen    tcell.Screen
	sound     terminal.Sounder
)

// initLogger sends logs to TERM_LOG so they never draw over the screen.
func initLogger() {
	path := config.Envs.TermLog
	if path == "" {
		path = os.DevNull
	}

	var err error
	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Opening log file %s: %v\n", path, err)
		os.Exit(1)
	}

	appLogger, err = logger.New("MAZETERM", config.ColorBlue, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating logger: %v\n", err)
		os.Exit(1)
	}
}

func initScreen() {
	var err error
	screen, err = tcell.NewScreen()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating screen: %v", err))
		fmt.Fprintf(os.Stderr, "Creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		appLogger.Error(fmt.Sprintf("Initializing screen: %v", err))
		fmt.Fprintf(os.Stderr, "Initializing screen: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Screen initialized")
}

func initSound() {
	sound = terminal.Silent{}
	if !config.Envs.Sound {
		return
	}
	s, err := terminal.NewSpeaker()
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Sound disabled: %v", err))
		return
	}
	sound = s
	appLogger.Info("Speaker initialized")
}

func main() {
	initLogger()
	defer logFile.Close()

	initScreen()
	initSound()

	app, err := terminal.New(terminal.Config{
		Screen:   screen,
		Width:    config.Envs.MazeWidth,
		Height:   config.Envs.MazeHeight,
		MazeFile: config.Envs.MazeFile,
		Sound:    sound,
		Logger:   appLogger,
	})
	if err != nil {
		screen.Fini()
		appLogger.Error(fmt.Sprintf("Creating terminal app: %v", err))
		fmt.Fprintf(os.Stderr, "Creating terminal app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx)
	sound.Close()
	screen.Fini()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Running terminal app: %v", err))
		os.Exit(1)
	}
}
