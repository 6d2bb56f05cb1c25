// Command poolbench times every object pool variant under the same parallel
// workload and prints a ranked comparison.
//
//	poolbench run --size 100000 --repeat 5
//	poolbench run --variants concurrent-queue,bag --pin
//	poolbench list
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
