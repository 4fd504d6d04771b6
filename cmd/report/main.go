// Command report aggregates a shadow trading CSV log and prints the
// day summary with the go/no-go verdict.
package main

import (
	"flag"
	"fmt"
	"os"

	"polymarket-shadow-lab/internal/decision"
	"polymarket-shadow-lab/internal/metrics"
	"polymarket-shadow-lab/internal/reporting"
	"polymarket-shadow-lab/internal/shadowlog"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <shadow_log.csv>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	records, err := shadowlog.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading shadow log: %v\n", err)
		os.Exit(1)
	}

	summary := metrics.Aggregate(records)
	result := decision.Evaluate(summary)
	worst := metrics.Worst1PctPnL(summary.PnLs)

	for _, line := range reporting.RenderLines(summary, worst, result) {
		fmt.Println(line)
	}
}
