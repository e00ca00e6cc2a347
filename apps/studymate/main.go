package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/core/groups"
	"github.com/studymate/studymate/core/notes"
	"github.com/studymate/studymate/core/notify"
	"github.com/studymate/studymate/core/planner"
	"github.com/studymate/studymate/core/session"
	"github.com/studymate/studymate/core/user"
	emailsvc "github.com/studymate/studymate/services/email"
	logsvc "github.com/studymate/studymate/services/logger"
	textgensvc "github.com/studymate/studymate/services/textgen"
	"github.com/studymate/studymate/storage/kv"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	ctx := context.Background()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "APP : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	if err := os.MkdirAll(conf.DataDir, 0o755); err != nil {
		logger.Fatal(fmt.Sprintf("creating data dir: %v", err), err)
	}
	store, err := kv.OpenSQLite(ctx, filepath.Join(conf.DataDir, "studymate.db"))
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening local store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing local store: %v", err), err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	usrSvc := user.Load(ctx, store, logger)
	planSvc := planner.Load(ctx, store, logger)
	noteSvc := notes.Load(ctx, store, logger)
	groupSvc := groups.Load(ctx, store, logger)
	notifSvc := notify.NewService(usrSvc, conf, logger)
	defer notifSvc.Close()

	gen := textgensvc.NewGeminiService(conf, logger)
	sessions := session.NewManager(store, conf, logger)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "studymate> ",
		HistoryFile:     filepath.Join(conf.DataDir, ".history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("initializing prompt: %v", err), err)
	}
	defer rl.Close()

	// =========================================================================
	// Run

	application := newApp(conf, logger, rl, usrSvc, planSvc, noteSvc, groupSvc, notifSvc, mailSvc, gen, sessions)
	if err = application.run(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("app error: %v", err), err)
	}
}
