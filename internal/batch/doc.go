// Package batch provides the orchestration logic for looking up lyrics for
// many songs and writing them to disk.
//
// # Manager
//
// The Manager coordinates one run:
//
//  1. Acquire a provider token once
//  2. Look up and normalize each song's lyrics
//  3. Render them as LRC or SRT
//  4. Write the file, and optionally embed the text in the source audio
//  5. Collect a per-song outcome into a Report
//
// # Basic Usage
//
//	manager := batch.NewManager(fetcher, session, batch.Options{
//	    Format: model.FormatLRC,
//	    Synced: true,
//	    Pace:   30 * time.Second,
//	}, logger, func(event batch.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	report, err := manager.Run(ctx, jobs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary)
//
// # Pacing and Concurrency
//
// With Concurrency of 1 songs run one after another with Pace between
// them, which keeps the provider from rate limiting long lists. A higher
// Concurrency runs that many songs at once and ignores Pace.
//
// # Tokens
//
// Workers share the token acquired at the start of Run and never refresh
// it. A song rejected as unauthorized is recorded as failed; the session is
// refreshed once after the run. Process, used for single songs, refreshes
// and retries immediately.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package batch
