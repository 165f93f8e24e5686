// Command reactivetop builds a small reactive graph, mutates it inside a
// transaction, and prints the resulting dependency topology and a spy
// trace of everything the runtime did along the way.
package main

import (
	"fmt"
	"os"

	"github.com/coregx/reactive"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "reactivetop",
		Short: "Demonstrates the reactive package's dependency graph and spy trace",
		RunE:  runDemo,
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	var trace []string
	stopSpy := reactive.Spy(func(e reactive.SpyEvent) {
		trace = append(trace, fmt.Sprintf("%-18s %s", e.Type, e.Name))
	})
	defer stopSpy()

	price := reactive.NewObservableValue("price", 10)
	qty := reactive.NewObservableValue("qty", 3)
	total := reactive.NewComputed("total", func() int {
		return price.Get() * qty.Get()
	})
	label := reactive.NewComputed("label", func() string {
		return fmt.Sprintf("$%d", total.Get())
	})

	r := reactive.Autorun(func() {
		fmt.Println("total:", label.Get())
	}, reactive.ReactionOption{Name: "print-total"})
	defer r.Dispose()

	reactive.Transaction(func() {
		price.Set(12)
		qty.Set(4)
	})

	fmt.Println()
	fmt.Println("dependency tree for label:")
	fmt.Println(reactive.GetDependencyTree(label))

	fmt.Println("observer tree for price:")
	fmt.Println(reactive.GetObserverTree(price.Atom()))

	fmt.Println("spy trace:")
	for _, line := range trace {
		fmt.Println(" ", line)
	}

	return nil
}
