package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// render writes v as indented JSON in --json mode, otherwise as a table
// with the given header and rows.
func (a *app) render(w io.Writer, v any, header string, rows func(io.Writer)) error {
	if a.flags.jsonMode {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return sysErr(fmt.Errorf("marshal output: %w", err))
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

const (
	hobbyHeader  = "ID\tNAME"
	personHeader = "ID\tNAME\tHOBBIES"
)

func (a *app) renderHobbies(w io.Writer, v any, hobbies ...*types.Hobby) error {
	return a.render(w, v, hobbyHeader, func(tw io.Writer) {
		for _, h := range hobbies {
			fmt.Fprintf(tw, "%s\t%s\n", h.ID, h.Name)
		}
	})
}

func (a *app) renderPersons(w io.Writer, v any, persons ...*types.PersonView) error {
	return a.render(w, v, personHeader, func(tw io.Writer) {
		for _, p := range persons {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, refsCell(p.Hobbies))
		}
	})
}

// refsCell shows raw references as ids and resolved ones as hobby names.
// A dangling resolved reference shows as "-".
func refsCell(refs []types.HobbyRef) string {
	cells := make([]string, len(refs))
	for i, r := range refs {
		switch {
		case !r.Populated:
			cells[i] = r.ID.String()
		case r.Hobby == nil:
			cells[i] = "-"
		default:
			cells[i] = r.Hobby.Name
		}
	}
	return strings.Join(cells, ",")
}
