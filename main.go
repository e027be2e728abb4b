package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wow_check/analysis"
	"wow_check/cache"
	"wow_check/chart"
	"wow_check/frontend"
	"wow_check/logging"
	"wow_check/wcl"
	"wow_check/wow"
)

var (
	flagConfig    string
	flagNoCache   bool
	flagEncounter string
	flagOpen      bool

	settings *Settings
)

var rootCmd = &cobra.Command{
	Use:           "wow_check",
	Short:         "Aggregates per-player raid metrics across Warcraft Logs reports",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		godotenv.Load(".env")

		var err error
		settings, err = loadSettings(flagConfig)
		if err != nil {
			return err
		}

		logging.Init(settings.LogLevel, settings.LogDir)
		cache.SetRoot(settings.CacheDir)

		err = sentry.Init(sentry.ClientOptions{
			Dsn:           os.Getenv("SENTRY_DSN"),
			HTTPTransport: new(http.Transport),
		})
		if err != nil {
			return errors.Wrap(err, "sentry")
		}

		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [reports.csv]",
	Short: "Analyze the listed report sessions and render comparison charts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath := "reports.csv"
		if len(args) == 1 {
			csvPath = args[0]
		}

		slug := flagEncounter
		if slug == "" {
			slug = settings.Encounter
		}
		enc, ok := wow.FindEncounter(slug)
		if !ok {
			var known []string
			for _, e := range wow.Encounters() {
				known = append(known, e.Slug)
			}
			return errors.Errorf("unknown encounter %q (known: %s)", slug, strings.Join(known, ", "))
		}

		reports, err := loadReports(csvPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		store, err := analysis.Run(&analysis.Options{
			Context:   ctx,
			Gateway:   newClient(),
			Encounter: enc,
			Reports:   reports,
			Progress:  func(s string) { log.Info().Msg(s) },
		})
		if err != nil {
			return err
		}

		indexPath, err := chart.Render(chart.Options{
			Store:     store,
			Encounter: enc,
			OutDir:    settings.OutDir,
		})
		if err != nil {
			return err
		}

		log.Info().Str("path", indexPath).Msg("charts rendered")

		if flagOpen {
			if err := browser.OpenFile(indexPath); err != nil {
				log.Warn().Err(err).Msg("browser open failed")
			}
		}

		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := gin.New()

		frontend.Route(g, frontend.Options{
			Gateway:         newClient(),
			OutDir:          settings.OutDir,
			PublicDir:       settings.PublicDir,
			RecaptchaSecret: os.Getenv("GOOGLE_RECAPTCHA_V3_SECRET"),
		})

		log.Info().Str("listen", settings.Listen).Msg("frontend up")

		return g.Run(settings.Listen)
	},
}

func newClient() *wcl.Client {
	return wcl.New(wcl.Options{
		ClientID:     os.Getenv("WCL_OAUTH2_CLIENT_ID"),
		ClientSecret: os.Getenv("WCL_OAUTH2_CLIENT_SECRET"),
		APIURL:       settings.APIURL,
		TokenURL:     settings.TokenURL,
		NoCache:      flagNoCache,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "settings file (yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "bypass the disk response cache")

	analyzeCmd.Flags().StringVarP(&flagEncounter, "encounter", "e", "", "encounter slug (default from settings)")
	analyzeCmd.Flags().BoolVar(&flagOpen, "open", false, "open the rendered index in a browser")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
