package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agiangrant/easel/demo"
)

// Demos implements the 'easel demos' command
func Demos(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range demo.All() {
		def := ""
		if d.Name == demo.Default {
			def = " (default)"
		}
		fmt.Fprintf(tw, "  %s\t%s%s\n", d.Name, d.Description, def)
	}
	return tw.Flush()
}
