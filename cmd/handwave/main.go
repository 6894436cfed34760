// Package main is the Handwave daemon entrypoint.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/averma/handwave/internal/app"
	"github.com/averma/handwave/internal/config"
	"github.com/averma/handwave/internal/detector"
	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/hotkey"
	"github.com/averma/handwave/internal/input"
	"github.com/averma/handwave/internal/server"
	"github.com/averma/handwave/internal/store"
	"github.com/averma/handwave/internal/tray"
)

var (
	flagConfig   string
	flagCamera   int
	flagAddr     string
	flagHeadless bool
	flagMock     bool
	flagExecCmd  string
	flagNoStore  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "handwave",
		Short:        "Control the desktop with hand gestures",
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "settings file (default ~/.handwave/handwave.toml)")
	cmd.Flags().IntVar(&flagCamera, "camera", -1, "camera device index, overrides the settings file")
	cmd.Flags().StringVar(&flagAddr, "addr", ":8080", "HTTP listen address, empty disables the server")
	cmd.Flags().BoolVar(&flagHeadless, "headless", false, "run without the system tray")
	cmd.Flags().BoolVar(&flagMock, "mock", false, "use the mock detector instead of MediaPipe")
	cmd.Flags().StringVar(&flagExecCmd, "exec-cmd", "", "dispatch actions to this command instead of injecting input")
	cmd.Flags().BoolVar(&flagNoStore, "no-store", false, "disable the settings database and action log")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	dataDir, err := ensureDataDir()
	if err != nil {
		return err
	}

	settingsPath := flagConfig
	if settingsPath == "" {
		settingsPath = filepath.Join(dataDir, "handwave.toml")
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	if flagCamera >= 0 {
		settings.Camera.Device = flagCamera
	}

	var st *store.Store
	if !flagNoStore {
		st, err = store.New(filepath.Join(dataDir, "handwave.db"))
		if err != nil {
			return fmt.Errorf("open settings database: %w", err)
		}
		defer st.Close()
	}

	flags := config.NewStore()
	// Settings file flags first, then the database written by the tray
	// and API on top.
	flags.Restore(settings.GestureFlags())
	if st != nil {
		persisted, err := st.Settings().GestureFlags()
		if err != nil {
			log.Printf("load gesture flags: %v", err)
		} else {
			flags.Restore(persisted)
		}
	}

	engineCfg := app.Config{
		Settings: settings,
		Flags:    flags,
		Store:    st,
	}
	if flagMock {
		engineCfg.Detector = detector.NewMockDetector()
	}
	if flagExecCmd != "" {
		engineCfg.Injector = input.NewExecInjector(flagExecCmd)
	}

	engine := app.New(engineCfg)

	var t *tray.Tray
	if !flagHeadless {
		var settingsRepo *store.SettingsRepository
		if st != nil {
			settingsRepo = st.Settings()
		}
		t = tray.New(flags, settingsRepo)
	}

	events := server.NewEventsHandler()
	engine.OnEvent(func(ev gesture.Event) {
		events.PublishEvent(ev)
		if t != nil {
			t.SetLastGesture(ev.Kind)
		}
	})
	engine.OnMode(events.PublishMode)

	if err := engine.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer engine.Stop()

	if flagAddr != "" {
		srv := server.New(server.Config{
			ConfigStore: flags,
			Store:       st,
			Camera:      engine.Camera(),
			Events:      events,
		})
		go func() {
			log.Printf("listening on %s", flagAddr)
			if err := srv.ListenAndServe(flagAddr); err != nil {
				log.Printf("http server: %v", err)
			}
		}()
	}

	keys := hotkey.New(flags, nil)
	if t != nil {
		keys.OnToggle(t.SetPaused)
	}
	go keys.Run()
	defer keys.Stop()

	if flagHeadless {
		waitForSignal()
		return nil
	}

	// systray must run on the main goroutine; it returns when the user
	// quits from the menu.
	t.Run()
	return nil
}

func ensureDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	dir := filepath.Join(home, ".handwave")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("shutting down")
}
