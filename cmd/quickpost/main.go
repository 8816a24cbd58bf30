// Command quickpost records a spoken job request, turns it into an account
// and a job posting, and asks for confirmation before anything is submitted.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xpanvictor/quickpost/internal/config"
	"github.com/xpanvictor/quickpost/internal/domains/intake"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	"github.com/xpanvictor/quickpost/pkg/io/recorder"
	"github.com/xpanvictor/quickpost/pkg/io/recorder/portaudio"
	"github.com/xpanvictor/quickpost/pkg/voiceclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := Logger.New(cfg.Debug)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mic := portaudio.NewMicrophone()
	mic.SampleRate = cfg.Client.SampleRate
	// 16-bit mono
	maxBytes := cfg.Client.SampleRate * 2 * cfg.Client.MaxRecordSeconds
	rec := recorder.New(mic, maxBytes, logger)

	term := newTerminal(os.Stdin, os.Stdout)
	flow := intake.NewFlow(intake.Deps{
		Recorder: rec,
		Backend:  voiceclient.New(cfg.Client.APIURL, cfg.Client.Timeout, logger),
		Reviewer: term,
		Notifier: term,
		Logger:   logger,
	}, cfg.Auth.TemporaryPassword)
	defer flow.Close()

	go func() {
		<-ctx.Done()
		flow.Close()
	}()

	out, err := run(ctx, flow, term)
	if err != nil {
		if errors.Is(err, intake.ErrFlowClosed) || errors.Is(err, context.Canceled) {
			fmt.Println("Cancelled.")
			return
		}
		fmt.Fprintf(os.Stderr, "Quick Post stopped: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Job posted (id %s).\n", out.Posting.ID)
	if out.Account != nil {
		fmt.Printf("Your account is ready. Sign in with mobile %s and the temporary password %q.\n",
			orDash(out.Account.User.Mobile), cfg.Auth.TemporaryPassword)
	}
}

// run drives the flow until it completes or the user gives up.
func run(ctx context.Context, flow *intake.Flow, term *terminal) (intake.Outcome, error) {
	fmt.Fprintln(term.out, "Tell us your name, where you are and what work you need done.")
	for {
		if flow.Current() == intake.StateIdle {
			if _, err := term.ask(ctx, "Press Enter to start recording. "); err != nil {
				return flow.Outcome(), err
			}
			if err := flow.Start(ctx); err != nil {
				if again, aerr := term.confirm(ctx, "Try again?"); aerr != nil || !again {
					return flow.Outcome(), err
				}
				continue
			}
			if _, err := term.ask(ctx, "Recording... press Enter to stop. "); err != nil {
				return flow.Outcome(), err
			}
		}

		out, err := flow.Submit(ctx)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, intake.ErrFlowClosed) {
			return out, err
		}
		again, aerr := term.confirm(ctx, fmt.Sprintf("Step %q failed. Try again?", flow.Failed()))
		if aerr != nil || !again {
			return out, err
		}
	}
}
