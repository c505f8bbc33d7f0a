// Package batch provides the orchestration logic for exporting a set of
// books from WeRead.
//
// # Manager
//
// The Manager drives the whole batch:
//
//  1. Deduplicate the requested book ids
//  2. Run the bounded task runner over the pending ids
//  3. Catch per-book failures into the round's failure set
//  4. Re-run only the failures in later rounds, pausing per the
//     escalation schedule
//  5. Partition the run into succeeded books and permanently failed ids
//
// # Basic Usage
//
//	manager := batch.NewManager(settings, exporter, func(event batch.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.RunBatch(ctx, bookIDs)
//	if err != nil {
//	    log.Fatal(err) // context cancellation only
//	}
//	fmt.Printf("%d exported, %d failed\n", len(result.Succeeded), len(result.PermanentlyFailed))
//
// # Retry Layers
//
// Failures are retried at two independent levels: each task retries
// quickly using the first two entries of the retry schedule, and ids
// still failing after that are re-submitted in later rounds with the
// full escalating schedule between rounds. Partial success is always
// preserved.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives
// ProgressEvent values, and a snapshot of done/total/failing counts is
// available from Progress() for polling UIs.
package batch
