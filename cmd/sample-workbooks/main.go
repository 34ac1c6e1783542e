package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/repository"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/sampledata"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/logger"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		athletes    = flag.Int("athletes", sampledata.DefaultAthletes, "Number of athletes in the current week")
		weeks       = flag.Int("weeks", sampledata.DefaultWeeks, "Number of history weeks")
		newAthletes = flag.Int("new", sampledata.DefaultNewAthletes, "Athletes without history")
		seed        = flag.Int64("seed", sampledata.DefaultSeed, "Random seed (0 for a random one)")
		outDir      = flag.String("out", "sample", "Output directory for current.json and history.json")
		baseURL     = flag.String("url", "", "Upload to a running service at this base URL, e.g. http://localhost:9080")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := sampledata.Config{
		Athletes:    *athletes,
		Weeks:       *weeks,
		NewAthletes: *newAthletes,
		Seed:        *seed,
	}
	current, history, err := sampledata.Generate(cfg)
	if err != nil {
		log.Error(ctx, "failed to generate workbooks", logger.Error(err))
		os.Exit(1)
	}

	currentPath, historyPath, err := sampledata.Write(*outDir, current, history)
	if err != nil {
		log.Error(ctx, "failed to write workbooks", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "workbooks written",
		logger.String("current", currentPath),
		logger.String("history", historyPath),
		logger.Int("athletes", cfg.Athletes),
		logger.Int("weeks", cfg.Weeks),
	)

	if *baseURL == "" {
		return
	}
	client := &http.Client{Timeout: *timeout}
	if err := sampledata.Upload(ctx, client, *baseURL, string(repository.KindCurrent), current); err != nil {
		log.Error(ctx, "failed to upload current workbook", logger.Error(err))
		os.Exit(1)
	}
	if err := sampledata.Upload(ctx, client, *baseURL, string(repository.KindHistory), history); err != nil {
		log.Error(ctx, "failed to upload history workbook", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "workbooks uploaded", logger.String("url", *baseURL))
}
