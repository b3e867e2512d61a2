package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"photoframe/matrixdisplay"
	"photoframe/overlay"
	"photoframe/photo"
	"photoframe/weather"
)

const defaultConfigPath = "config.json"

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	configPath := flag.StringP("config", "c", defaultConfigPath, "path to the JSON config file")
	delay := flag.DurationP("delay", "d", 0, "time each photo stays on screen (overrides config)")
	images := flag.StringP("images", "i", "", "directory to scan for photos (overrides config)")
	logLevel := flag.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	dryRun := flag.Bool("dry-run", false, "log the overlay layout of every photo instead of driving the panel")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	debug := level >= logrus.DebugLevel
	overlay.SetDebugLogging(debug)
	photo.SetDebugLogging(debug)
	weather.SetDebugLogging(debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	if *images != "" {
		cfg.ImageDir = *images
	}
	showFor := cfg.delay()
	if *delay > 0 {
		showFor = *delay
	}

	engineCfg, err := cfg.overlayConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	engineCfg.Icons = overlay.NewIconSet(os.DirFS(cfg.iconDir()))
	engine, err := overlay.New(engineCfg)
	if err != nil {
		logrus.Fatalf("failed to create overlay engine: %v", err)
	}

	paths, err := photo.Scan(cfg.imageDir(), cfg.Exclude)
	if err != nil {
		logrus.Fatal(err)
	}
	rand.Shuffle(len(paths), func(i, j int) { paths[i], paths[j] = paths[j], paths[i] })
	logrus.WithField("dir", cfg.imageDir()).Infof("found %d photos", len(paths))

	state := &weatherState{}
	if apiKey := os.Getenv("OPENWEATHER_API_KEY"); apiKey != "" {
		lat, lon := cfg.location()
		client := weather.NewClient(apiKey, lat, lon)
		if *dryRun {
			fetchWeatherOnce(ctx, client, state)
		} else {
			go refreshWeather(ctx, client, state, cfg.weatherRefresh(), weatherRetryDelay)
		}
	} else {
		logrus.Info("OPENWEATHER_API_KEY not set; weather disabled")
	}

	show := &slideshow{
		engine:  engine,
		paths:   paths,
		weather: state,
		delay:   showFor,
		load:    photo.Load,
	}

	if *dryRun {
		if err := show.dryRun(ctx); err != nil {
			logrus.Fatal(err)
		}
		return
	}

	ctrl, err := matrixdisplay.NewController(cfg.panelOptions())
	if err != nil {
		logrus.Fatalf("failed to open matrix display: %v", err)
	}
	defer ctrl.Close()
	show.sink = ctrl

	logrus.WithField("delay", showFor).Info("starting slideshow")
	if err := show.run(ctx); err != nil {
		logrus.Error(err)
		return
	}
	logrus.Info("shutting down")
}

func fetchWeatherOnce(ctx context.Context, src weatherSource, state *weatherState) {
	fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	report, err := src.Current(fetchCtx)
	if err != nil {
		logrus.WithError(err).Warn("failed to get weather")
		return
	}
	state.set(report)
}
