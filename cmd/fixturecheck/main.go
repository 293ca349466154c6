// Command fixturecheck validates a ProjectHub fixture file and prints how many
// records each collection holds. With no argument it checks the embedded fixture.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/robby/projecthub/internal/fixture"
)

func main() {
	var (
		data *fixture.Data
		err  error
	)
	if len(os.Args) > 1 {
		data, err = fixture.Load(os.Args[1])
	} else {
		data, err = fixture.Default()
	}

	var verr *fixture.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "Fixture has %d problem(s):\n", len(verr.Problems))
		for _, p := range verr.Problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}

	printCounts(os.Stdout, data)
}

func printCounts(w io.Writer, d *fixture.Data) {
	counts := []struct {
		name string
		n    int
	}{
		{"users", len(d.Users)},
		{"projects", len(d.Projects)},
		{"milestones", len(d.Milestones)},
		{"tasks", len(d.Tasks)},
		{"task_logs", len(d.TaskLogs)},
		{"risks", len(d.Risks)},
		{"delay_requests", len(d.DelayRequests)},
		{"drafts", len(d.Drafts)},
		{"notifications", len(d.Notifications)},
		{"dependencies", len(d.Dependencies)},
		{"baselines", len(d.Baselines)},
	}

	fmt.Fprintln(w, "Fixture OK")
	for _, c := range counts {
		fmt.Fprintf(w, "  %-15s %d\n", c.name, c.n)
	}
}
