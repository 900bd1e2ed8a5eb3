package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fancyqr/fancyqr/api"
	"github.com/fancyqr/fancyqr/builder"
	"github.com/fancyqr/fancyqr/config"
	"github.com/fancyqr/fancyqr/generator"
	"github.com/fancyqr/fancyqr/render"
)

var version = "v0.1.0"

// errNotified marks a failure already reported to the user.
var errNotified = errors.New("generation failed")

func main() {
	root := &cobra.Command{
		Use:           "fancyqr",
		Short:         "Generate styled QR code images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath, envFile string
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")

	// --- generate command ----------------------------------------------------
	var form builder.FormState
	var preview bool
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one QR code image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, configPath, envFile, form, preview)
		},
	}
	genCmd.Flags().StringVarP(&form.URL, "url", "u", "", "URL to encode")
	genCmd.Flags().StringVar(&form.Foreground, "fg", "", "Foreground color, #rrggbb (default from config)")
	genCmd.Flags().StringVar(&form.Background, "bg", "", "Background color, #rrggbb (default from config)")
	genCmd.Flags().StringVar(&form.Eye, "eye", "", "Eye pattern: square, circle, dotted, none")
	genCmd.Flags().StringVar(&form.Body, "body", "", "Body pattern: default, dotted, lines")
	genCmd.Flags().BoolVar(&preview, "preview", false, "Also print the QR code to the terminal")
	root.AddCommand(genCmd)

	// --- serve command -------------------------------------------------------
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, envFile)
		},
	}
	root.AddCommand(serveCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fancyqr %s\n", version)
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errNotified) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// setup loads config and builds the logger and generator shared by all
// commands.
func setup(configPath, envFile string) (*config.Config, *slog.Logger, *generator.Generator, render.Level, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("load config: %w", err)
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	level, err := render.ParseLevel(cfg.ErrorCorrection)
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("config: %w", err)
	}
	renderer, err := render.NewStyledRenderer(render.Options{
		Level:      level,
		ModuleSize: cfg.ModuleSize,
		Border:     cfg.Border,
	})
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("config: %w", err)
	}

	return cfg, log, generator.New(renderer, cfg.Output, log), level, nil
}

// formDefaults fills empty fields of form from the configured defaults.
func formDefaults(form builder.FormState, d config.FormDefaults) builder.FormState {
	if form.Foreground == "" {
		form.Foreground = d.Foreground
	}
	if form.Background == "" {
		form.Background = d.Background
	}
	if form.Eye == "" {
		form.Eye = d.Eye
	}
	if form.Body == "" {
		form.Body = d.Body
	}
	return form
}

// runGenerate performs a single generation and prints the notification.
func runGenerate(cmd *cobra.Command, configPath, envFile string, form builder.FormState, preview bool) error {
	cfg, _, gen, level, err := setup(configPath, envFile)
	if err != nil {
		return err
	}

	res := gen.Generate(cmd.Context(), formDefaults(form, cfg.Defaults))
	n := res.Notice
	out := cmd.OutOrStdout()
	if !res.OK() {
		out = cmd.ErrOrStderr()
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
	if !res.OK() {
		return errNotified
	}

	if preview {
		text, err := render.Preview(res.Request.Payload, level, false)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
	}
	return nil
}

// runServe is the service entrypoint that wires all components together.
func runServe(configPath, envFile string) error {
	cfg, log, gen, level, err := setup(configPath, envFile)
	if err != nil {
		return err
	}

	log.Info("starting fancyqr", "version", version, "port", cfg.Port, "output", cfg.Output)

	d := cfg.Defaults
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Generator: gen,
			Defaults: builder.FormState{
				Foreground: d.Foreground,
				Background: d.Background,
				Eye:        d.Eye,
				Body:       d.Body,
			},
			Level:     level,
			Log:       log,
			Version:   version,
			StartTime: time.Now(),
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr, "form_url", fmt.Sprintf("http://localhost:%d/", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}
