package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-drift/effectview/pkg/blur"
	"github.com/go-drift/effectview/pkg/progress"
	"github.com/go-drift/effectview/pkg/shape"
)

func init() {
	RegisterCommand(&Command{
		Name:  "modes",
		Short: "List every effect mode",
		Long: `List the modes of every effect with their integer value.

Blur modes show whether they are accelerated and which mode they fall back
to. Shape modes show their family. Config files and saved state accept
either the name or the value.`,
		Usage: "effectview modes",
		Run:   runModes,
	})
}

func runModes([]string) error {
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "BLUR\tVALUE\tACCELERATED\tFALLBACK")
	for _, m := range blur.Modes() {
		fmt.Fprintf(w, "%s\t%d\t%t\t%s\n", m, m.Value(), m.IsAccelerated(), m.Fallback())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SHAPE\tVALUE\tFAMILY")
	for _, m := range shape.Modes() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", m, m.Value(), m.Family())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SCALE TYPE\tVALUE")
	for _, s := range shape.ScaleTypes() {
		fmt.Fprintf(w, "%s\t%d\n", s, s.Value())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROGRESS\tVALUE")
	for _, m := range progress.Modes() {
		fmt.Fprintf(w, "%s\t%d\n", m, m.Value())
	}
	return w.Flush()
}
