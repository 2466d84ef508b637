// Command cohort segments a labelled dataset into cohorts and finds dense
// subgroups of similar records.
//
// Usage:
//
//	cohort analyze patients.csv --k 3 --seed 42
//	cohort communities patients.csv.zst --core-k 2 --source s3 --bucket data
//	cohort config > cohort.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
