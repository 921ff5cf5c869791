// Package app wires configuration, logging, the crontab backend, the
// journal and metrics into the cronpad commands.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flemzord/cronpad/internal/config"
	"github.com/flemzord/cronpad/internal/crontab"
	"github.com/flemzord/cronpad/internal/lifecycle"
	"github.com/flemzord/cronpad/internal/session"
)

// interruptGrace bounds how long an interrupted run waits for the session
// to finish an operation in flight before the journal is closed.
const interruptGrace = 2 * time.Second

// Run starts the interactive editor and blocks until the operator quits,
// input ends or SIGINT/SIGTERM is received. An interrupted session exits
// without writing anything further.
func Run(params Params) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := Setup(ctx, params)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	p := env.Prompter()
	m, err := env.Manager(ctx, lifecycle.PromptConfirmer(p))
	if err != nil {
		return err
	}

	var notifier session.Notifier
	if env.Config.Backend.Kind == config.BackendFile && env.Config.Backend.Watch {
		w, err := crontab.NewWatcher(env.Config.Backend.Path, env.Logger)
		if err != nil {
			env.Logger.Warn("watch disabled", "error", err)
		} else {
			w.Start(ctx)
			defer w.Stop()
			notifier = w
		}
	}

	s := session.New(session.Config{
		Manager:  m,
		Prompter: p,
		Notifier: notifier,
		Logger:   env.Logger,
	})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return awaitSession(ctx, done, interruptGrace, func() {
		fmt.Fprintln(env.Out())
		env.Logger.Info("interrupted")
	})
}

// awaitSession returns the session result from done. Once ctx is cancelled
// it calls onInterrupt and waits at most grace for the session, so a commit
// or journal write in flight completes before the caller closes the
// environment. A session blocked on a terminal read does not observe ctx;
// it is left behind when grace expires and ends with the process.
func awaitSession(ctx context.Context, done <-chan error, grace time.Duration, onInterrupt func()) error {
	select {
	case err := <-done:
		if ctx.Err() != nil {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	onInterrupt()
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	}
	return nil
}
