package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"chat-relay/config"
	"chat-relay/db"

	"github.com/uptrace/bun/extra/bundebug"
	"golang.org/x/exp/slog"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to app config")
	flag.Parse()

	conf, err := config.FromFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse config: %s\n", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(conf.AppConfig.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %s\n", conf.AppConfig.LogLevel, err)
		os.Exit(1)
	}

	logger := slog.New(NewChatLogHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	bunDB, err := db.Connect(&conf.DBConfig)
	if err != nil {
		logger.Error("Could not connect to DB", "err", err.Error())
		os.Exit(1)
	}
	if logLevel == slog.LevelDebug {
		bunDB.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	sessionManager := NewSessionManager()
	router := NewRouter(sessionManager, logger)
	store := NewCredentialStore(bunDB, logger)
	handler := NewHandler(store, sessionManager, router)

	if conf.ChatConfig.MetricsAddr != "" {
		go ServeMetrics(conf.ChatConfig.MetricsAddr, conf.ChatConfig.MetricsUser, conf.ChatConfig.MetricsPassword, logger)
	}

	listener, err := net.Listen("tcp", conf.ChatConfig.Addr)
	if err != nil {
		logger.Error("Could not listen", "addr", conf.ChatConfig.Addr, "err", err.Error())
		os.Exit(1)
	}
	defer listener.Close()

	exitChan := make(chan os.Signal, 1)
	signal.Notify(exitChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-exitChan
		logger.Info("Shutting down")
		listener.Close()
		os.Exit(0)
	}()

	logger.Info("Chat server listening", "addr", conf.ChatConfig.Addr)
	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Error("Could not accept connection", "err", err.Error())
			return
		}

		go handler.Handle(conn, logger)
	}
}
