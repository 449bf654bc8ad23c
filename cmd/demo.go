package cmd

import (
	"fmt"
	"math/rand/v2"

	"listkit/core/diff"
	"listkit/core/reorder"
	"listkit/core/snapshot"
	"listkit/feature/datasource"

	"github.com/spf13/cobra"
)

var demoSeed uint64

// demoCmd walks a scripted board through the reconciliation engine and
// prints every plan a renderer would receive.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted board through the diff engine",
	Long: `Runs a sequence of board mutations against an in-process data source
and prints the operation plan computed for each step, exactly as a
remote renderer would receive it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer := &consoleRenderer{
			layout: &diff.Layout{Items: map[snapshot.SectionID][]snapshot.ItemID{}},
		}

		src := datasource.New(datasource.Config{
			Render:  renderer.render,
			Reorder: reorder.Policy{Enabled: true},
			Rand:    rand.New(rand.NewPCG(demoSeed, 0)),
		})

		fmt.Println("== populate")
		if _, err := src.ApplyInitial(
			[]snapshot.SectionID{"todo", "done"},
			map[snapshot.SectionID][]snapshot.ItemID{
				"todo": {"wash", "cook", "shop"},
				"done": {"sleep"},
			},
			false,
		); err != nil {
			return err
		}

		fmt.Println("== append iron to todo")
		if _, err := src.Append("todo", true, "iron"); err != nil {
			return err
		}

		fmt.Println("== move cook to done")
		if _, err := src.Move("cook", "done", true); err != nil {
			return err
		}

		fmt.Println("== delete wash")
		if _, err := src.Delete(true, "wash"); err != nil {
			return err
		}

		fmt.Println("== shuffle todo")
		if _, err := src.Shuffle("todo", true); err != nil {
			return err
		}

		fmt.Println("== reconfigure sleep")
		if _, err := src.Reconfigure(true, "sleep"); err != nil {
			return err
		}

		fmt.Println("== reload cook")
		if _, err := src.Reload(true, "cook"); err != nil {
			return err
		}

		fmt.Println("== propose cross-group reorder (rejected by policy)")
		moved, err := src.ProposeMove(
			diff.Position{Section: "todo", Index: 0},
			diff.Position{Section: "done", Index: 0},
		)
		if err != nil {
			return err
		}
		fmt.Printf("   moved: %v\n", moved)

		fmt.Println("== final layout")
		renderer.dump()
		return nil
	},
}

// consoleRenderer applies every plan to a tracked layout and prints the
// operations, standing in for a real UI.
type consoleRenderer struct {
	layout *diff.Layout
}

func (r *consoleRenderer) render(plan *diff.Plan, animated bool) error {
	if err := r.layout.Apply(plan); err != nil {
		return err
	}
	if plan.Empty() {
		fmt.Println("   (no operations)")
		return nil
	}
	for _, op := range plan.Operations {
		switch op.Type {
		case diff.OpInsertSection, diff.OpDeleteSection:
			fmt.Printf("   %-17s %s @%d\n", op.Type, op.Section, op.SectionIndex)
		case diff.OpInsertItem, diff.OpReconfigureItem, diff.OpReloadItem:
			fmt.Printf("   %-17s %s at %s[%d]\n", op.Type, op.Item, op.To.Section, op.To.Index)
		case diff.OpDeleteItem:
			fmt.Printf("   %-17s %s from %s[%d]\n", op.Type, op.Item, op.From.Section, op.From.Index)
		case diff.OpMoveItem:
			fmt.Printf("   %-17s %s %s[%d] -> %s[%d]\n", op.Type, op.Item,
				op.From.Section, op.From.Index, op.To.Section, op.To.Index)
		}
	}
	fmt.Printf("   animated: %v\n", animated)
	return nil
}

func (r *consoleRenderer) dump() {
	for _, sec := range r.layout.Sections {
		fmt.Printf("   %s: %v\n", sec, r.layout.Items[sec])
	}
}

func init() {
	demoCmd.Flags().Uint64Var(&demoSeed, "seed", 1, "seed for the shuffle step")
	RootCmd.AddCommand(demoCmd)
}
