package main

import (
	"context"
	"fmt"
	"github.com/awakari/mastodon-cleaner/api/mastodon"
	"github.com/awakari/mastodon-cleaner/config"
	"github.com/awakari/mastodon-cleaner/locale"
	"github.com/awakari/mastodon-cleaner/service"
	"github.com/robfig/cron/v3"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	cfgPath string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "mastodon-cleaner",
	Short: "Delete the old statuses of a Mastodon account",
	Long: `Fetches every status of the account owning the access token and deletes the ones older than
the configured number of days, keeping the pinned and bookmarked ones. Dry run is on by default.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	pathDefault := os.Getenv("CONFIG_PATH")
	if pathDefault == "" {
		pathDefault = config.PathDefault
	}
	rootCmd.Flags().StringVar(&cfgPath, "config", pathDefault, "configuration file (.json, .toml or .yaml)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", true, "only report what would be deleted, overrides the configuration when set")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) (err error) {
	out := cmd.OutOrStdout()
	//
	cfg, err := config.NewConfigFromFile(cfgPath)
	if err != nil {
		printFatal(out, locale.LanguageDefault.String(), err)
		return
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Dryrun = dryRun
	}
	//
	opts := slog.HandlerOptions{
		Level: slog.Level(cfg.Log.Level),
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &opts))
	//
	cat, err := locale.NewCatalog(cfg.Locale.Dir)
	if err != nil {
		printFatal(out, cfg.Language, err)
		return
	}
	msgs, err := cat.Messages(cfg.Language)
	if err != nil {
		printFatal(out, cfg.Language, err)
		return
	}
	log.Debug(fmt.Sprintf("selected the messages language: %s", msgs.Language()))
	//
	clientHttp := &http.Client{
		Timeout: cfg.Http.Timeout.Duration,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	runOnce := func() (errRun error) {
		logRun := log.With("run", ksuid.New().String())
		client := mastodon.NewClient(clientHttp, cfg.ServerUrl, cfg.AccessToken, cfg.UserAgent, cfg.Retry)
		client = mastodon.NewClientLogging(client, logRun)
		m := service.NewMetrics()
		svc := service.NewService(client, cfg, msgs, out, m)
		svc = service.NewServiceLogging(svc, logRun)
		_, errRun = service.Run(ctx, svc, cfg.DeleteOlderThanDays, time.Now().UTC())
		if errRun != nil {
			logRun.Error(fmt.Sprintf("cleanup aborted: %s", errRun))
			_, _ = fmt.Fprintln(out, msgs.Format(locale.KeyFatal, errRun))
		}
		if cfg.Metrics.Textfile != "" {
			if errMetrics := m.WriteToTextfile(cfg.Metrics.Textfile); errMetrics != nil {
				logRun.Warn(fmt.Sprintf("failed to write the metrics to %s: %s", cfg.Metrics.Textfile, errMetrics))
			}
		}
		return
	}
	//
	if cfg.Schedule == "" {
		err = runOnce()
		return
	}
	logCron := newCronLogger(log)
	c := cron.New(cron.WithLogger(logCron), cron.WithChain(cron.Recover(logCron), cron.SkipIfStillRunning(logCron)))
	_, err = c.AddFunc(cfg.Schedule, func() {
		_ = runOnce()
	})
	if err != nil {
		err = fmt.Errorf("%w: %w", config.ErrConfiguration, err)
		_, _ = fmt.Fprintln(out, msgs.Format(locale.KeyFatal, err))
		return
	}
	log.Info(fmt.Sprintf("scheduled the cleanup: %s", cfg.Schedule))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("stopped the scheduled cleanup")
	return
}

// newCronLogger keeps the scheduler output off stdout. PrintfLogger only emits the scheduler errors.
func newCronLogger(log *slog.Logger) cron.Logger {
	return cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelError))
}

// printFatal reports a failure that happened before the configured messages became available.
func printFatal(out io.Writer, lang string, err error) {
	msg := fmt.Sprintf("Error: %s", err)
	if cat, errCat := locale.NewCatalog(""); errCat == nil {
		if msgs, errMsgs := cat.Messages(lang); errMsgs == nil {
			msg = msgs.Format(locale.KeyFatal, err)
		}
	}
	_, _ = fmt.Fprintln(out, msg)
}
