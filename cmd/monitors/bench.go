package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/go-monitors/internal/queue"
)

func newBenchCmd() *cobra.Command {
	var iterations, size, producers int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare BoundedBuffer and ChannelBuffer handoff throughput",
		RunE: func(_ *cobra.Command, _ []string) error {
			if iterations <= 0 {
				return fmt.Errorf("count must be positive, got %d", iterations)
			}
			bounded, err := queue.NewBoundedBuffer[int](size)
			if err != nil {
				return err
			}
			channel, err := queue.NewChannelBuffer[int](size)
			if err != nil {
				return err
			}

			fmt.Printf("Benchmarking blocking queue handoff (%d items, size=%d, producers=%d)\n", iterations, size, producers)
			fmt.Println(rule)

			boundedDur := handoff(bounded, iterations, producers)
			channelDur := handoff(channel, iterations, producers)

			// Results
			boundedPerOp := float64(boundedDur.Nanoseconds()) / float64(iterations)
			channelPerOp := float64(channelDur.Nanoseconds()) / float64(iterations)

			fmt.Printf("\nResults (put + take per item):\n")
			fmt.Printf("  BoundedBuffer:  %v (%.2f ns/op)\n", boundedDur, boundedPerOp)
			fmt.Printf("  ChannelBuffer:  %v (%.2f ns/op)\n", channelDur, channelPerOp)

			if channelPerOp < boundedPerOp {
				fmt.Printf("\n  Speedup:  %.2fx (ChannelBuffer faster)\n", boundedPerOp/channelPerOp)
			} else {
				fmt.Printf("\n  Speedup:  %.2fx (BoundedBuffer faster)\n", channelPerOp/boundedPerOp)
			}

			fmt.Printf("\nThroughput:\n")
			fmt.Printf("  BoundedBuffer:  %.2f M items/sec\n", 1000/boundedPerOp)
			fmt.Printf("  ChannelBuffer:  %.2f M items/sec\n", 1000/channelPerOp)
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "count", "n", 1_000_000, "number of items")
	cmd.Flags().IntVar(&size, "size", 1024, "queue capacity")
	cmd.Flags().IntVar(&producers, "producers", 1, "number of producer goroutines")
	return cmd
}

// handoff moves n items from producers goroutines to one consumer and
// returns the elapsed time.
func handoff(q queue.Blocking[int], n, producers int) time.Duration {
	if producers < 1 {
		producers = 1
	}

	consumed := make(chan int)
	go func() {
		count := 0
		for {
			if _, ok := q.Take(); !ok {
				break
			}
			count++
		}
		consumed <- count
	}()

	start := time.Now()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		share := n / producers
		if p == 0 {
			share += n % producers
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < share; i++ {
				q.Put(i)
			}
		}()
	}
	wg.Wait()
	q.Complete()
	<-consumed
	return time.Since(start)
}
