package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/needle-insert/audio"
	"github.com/lixenwraith/needle-insert/config"
	"github.com/lixenwraith/needle-insert/constants"
	"github.com/lixenwraith/needle-insert/core"
	"github.com/lixenwraith/needle-insert/engine"
	"github.com/lixenwraith/needle-insert/input"
	"github.com/lixenwraith/needle-insert/render"
	"github.com/lixenwraith/needle-insert/status"
)

var (
	configPath  = flag.String("config", config.DefaultPath, "Path to the TOML config file")
	debugFlag   = flag.Bool("debug", false, "Log to logs/needle-insert.log and show the metrics panel")
	muteFlag    = flag.Bool("mute", false, "Start with sound effects muted")
	writeConfig = flag.String("write-config", "", "Write the default config to `path` and exit")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if *writeConfig != "" {
		if err := config.WriteDefault(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default config to %s\n", *writeConfig)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "needle-insert: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	metrics := status.NewRegistry()

	// Audio is optional; the game runs silently without a device
	sound := audio.NewSoundManager(cfg.AudioSettings(), metrics)
	if err := sound.Initialize(); err != nil {
		log.Printf("audio unavailable, continuing without sound: %v", err)
	}
	defer sound.Cleanup()

	opts := cfg.SessionOptions()
	opts.Sound = sound
	opts.Metrics = metrics
	session, err := engine.NewSession(opts)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashCleanup(screen.Fini)
	defer core.SetCrashCleanup(nil)

	screen.EnableMouse()
	screen.HideCursor()

	scheduler := engine.NewScheduler(session, engine.NewMonotonicTimeProvider(), cfg.SchedulerConfig())
	scheduler.Init(screen.Size())
	scheduler.Start()
	defer scheduler.Stop()

	renderer := render.NewTerminalRenderer(screen, cfg.Display.Color, metrics)
	renderer.SetShowMetrics(cfg.Display.ShowMetrics || *debugFlag)

	log.Printf("started: margin %.2f, tick %v, launch %v in %d steps",
		cfg.Engine.SafeMargin, cfg.TickInterval(), cfg.LaunchDuration(), cfg.Engine.LaunchSteps)

	return loop(screen, scheduler, renderer, sound)
}

// loop polls input and renders the latest snapshot until the player quits
func loop(screen tcell.Screen, scheduler *engine.Scheduler, renderer *render.TerminalRenderer, sound *audio.SoundManager) error {
	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	machine := input.NewMachine()

	for {
		select {
		case ev := <-eventChan:
			intent := machine.Process(ev)
			switch intent.Type {
			case input.IntentQuit:
				log.Printf("quit requested")
				return nil
			case input.IntentFire:
				scheduler.Fire()
			case input.IntentTogglePause:
				scheduler.TogglePause()
			case input.IntentRestart:
				scheduler.Restart()
			case input.IntentToggleMute:
				log.Printf("sound enabled: %t", sound.ToggleEnabled())
			case input.IntentVolumeUp:
				log.Printf("volume: %.1f", sound.AdjustVolume(constants.VolumeStep))
			case input.IntentVolumeDown:
				log.Printf("volume: %.1f", sound.AdjustVolume(-constants.VolumeStep))
			case input.IntentToggleMetrics:
				renderer.SetShowMetrics(!renderer.ShowMetrics())
			case input.IntentResize:
				scheduler.Resize(intent.Width, intent.Height)
				screen.Sync()
			}

		case <-frameTicker.C:
			renderer.RenderFrame(scheduler.Snapshot())
		}
	}
}
