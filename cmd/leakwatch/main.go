// leakwatch is an interactive demonstration of the lifecycle leak
// registry. It spawns managers holding synthetic resources, lets you
// clean or abandon them, and shows what ReportLeaks would flag.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/wippyai/lifecycle"
	"github.com/wippyai/lifecycle/cleanup"
)

func main() {
	var (
		count = flag.Int("managers", 3, "Number of demo managers to start with")
		plain = flag.Bool("plain", false, "Print a one-shot leak report instead of the TUI")
	)
	flag.Parse()

	var managers []*lifecycle.Manager
	for i := 0; i < *count; i++ {
		managers = append(managers, newDemoManager(fmt.Sprintf("demo-%d", i)))
	}

	if *plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printReport()
		return
	}

	if err := runTUI(managers); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newDemoManager builds a manager that tracks a handful of synthetic
// resources so there is something to sweep.
func newDemoManager(name string) *lifecycle.Manager {
	m := lifecycle.New(name)
	m.Add(func() {}) // callable item
	m.Give("flush", nil, cleanup.Func(cleanupNote(name)))
	m.After(time.Hour, func() {}) // pending work, cancelled on Clean
	return m
}

func cleanupNote(name string) func() {
	return func() {
		fmt.Printf("cleaned resources of %s\n", name)
	}
}

func printReport() {
	leaks := lifecycle.Leaks()
	if len(leaks) == 0 {
		fmt.Println("no outstanding managers")
		return
	}
	for _, l := range leaks {
		fmt.Printf("LEAK %s  name=%q  age=%s\n  %s\n", l.ID, l.Name, l.Age.Round(time.Millisecond), l.Trace)
	}
}
