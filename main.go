package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afpineda/NuS-NimBLE-Serial/commands"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port the peer is attached to")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP bridge (empty to disable)")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Int("buffer-size", 64, "Working buffer size of the command grammars")
	flag.Bool("lowercase-at", false, "Accept the lower case \"at\" preamble")
	flag.Bool("console", false, "Read command lines from stdin as well")
	flag.String("device-name", DefaultDeviceName, "Initial device name")
	flag.String("mqtt-broker", "", "MQTT broker URL of the command bridge (empty to disable)")
	flag.String("mqtt-topic", "nus-cmd/command", "MQTT topic carrying command lines")
	flag.String("mqtt-reply-topic", "nus-cmd/reply", "MQTT topic carrying replies")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configPath), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	processorConfig, err := commands.NewConfigBuilder().
		WithBufferSize(config.BufferSize).
		WithLowerCasePreamble(config.LowerCaseAT).
		WithLogger(logger.With("component", "processor")).
		WithDialer(commands.SerialDialer{
			PortName: config.SerialPort,
			BaudRate: config.BaudRate,
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create processor config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, err := commands.New(ctx, processorConfig)
	if err != nil {
		logger.Error("Failed to create processor", "error", err)
		os.Exit(1)
	}

	app := NewApp(p, config.DeviceName, p.BufferSize())
	if err := p.SetATHandler(app); err != nil {
		logger.Error("Failed to set AT handler", "error", err)
		os.Exit(1)
	}
	if err := p.SetShellHandler(app.ShellHandler()); err != nil {
		logger.Error("Failed to set shell handler", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting command processor", "serial_port", config.SerialPort, "buffer_size", p.BufferSize())

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// done is closed when the peer or the console goes away
	done := make(chan struct{}, 2)

	go func() {
		err := p.Loop(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Command loop failed", "error", err)
		}
		done <- struct{}{}
	}()

	var httpServer *http.Server
	if config.BindAddress != "" {
		httpServer = &http.Server{
			Addr: config.BindAddress,
			Handler: &Server{
				Logger:    logger.With("component", "server"),
				Processor: p,
			},
		}

		go func() {
			logger.Info("Starting HTTP server", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	if config.MQTTBroker != "" {
		bridge := &MQTTBridge{
			Logger:     logger.With("component", "mqtt"),
			Processor:  p,
			Topic:      config.MQTTTopic,
			ReplyTopic: config.MQTTReplyTopic,
		}
		bridge.Start(ctx, config)
	}

	if config.Console {
		console := NewConsole()
		go func() {
			defer console.Close()
			err := console.Run(func(w io.Writer, line []byte) {
				p.Execute(w, line)
			})
			if err != nil {
				logger.Error("Console failed", "error", err)
			}
			done <- struct{}{}
		}()
	}

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig)
	case <-done:
		logger.Info("Input closed")
	}
	cancel()

	logger.Info("Closing transport")
	if err := p.Close(); err != nil {
		logger.Error("Failed to close transport", "error", err)
	}

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		logger.Info("Closing HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to gracefully shutdown server", "error", err)
			os.Exit(1)
		}
	}
}
