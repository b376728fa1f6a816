// Command termframedemo is a minimal application wiring the Runtime,
// the terminal driver, and the input parser together around the
// counter component.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"termframe"
	"termframe/framerate"
	"termframe/input"
	"termframe/runtime"
	"termframe/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termframedemo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig("config.toml")
	if err != nil {
		return err
	}

	driver := term.NewDriver(os.Stdout)
	if !driver.IsTerminal() {
		return fmt.Errorf("stdout is not a terminal")
	}
	size, err := driver.Size()
	if err != nil {
		return err
	}
	if err := driver.EnterRawMode(); err != nil {
		return err
	}
	defer driver.Restore()

	mouseMode := term.MouseOff
	if cfg.Input.Mouse == "sgr" {
		mouseMode = term.MouseAny
		driver.EnableMouseTracking(mouseMode)
		defer driver.DisableMouseTracking()
	}

	theme := termframe.ThemeDark
	if cfg.Theme.Name == "light" {
		theme = termframe.ThemeLight
	}
	if !driver.IsTerminal() {
		theme = termframe.ThemeNoColor
	}

	rt, err := runtime.New(
		counterComponent{theme: theme},
		size.Rows, size.Cols,
		driver, driver,
		runtime.Options{
			FPS:      framerate.FPS(cfg.Render.FPS),
			Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
			Executor: runtime.DefaultExecutor{},
		},
	)
	if err != nil {
		return err
	}

	parser, err := input.NewParser(os.Stdin)
	if err != nil {
		return err
	}
	defer parser.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	resizeCh := driver.WatchResize()
	defer driver.Stop()
	go func() {
		for sz := range resizeCh {
			rt.Dispatch(runtime.Event{Kind: runtime.EventResize, Width: sz.Cols, Height: sz.Rows})
		}
	}()

	go func() {
		if err := parser.Run(ctx, rt); err != nil {
			cancel()
		}
	}()

	rt.Run(ctx)
	return nil
}
