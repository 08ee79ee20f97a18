package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/tagengine/internal/domain"
)

// resolvedTag pairs a requested name with the tag it resolved to.
type resolvedTag struct {
	Requested string
	Tag       domain.Tag
}

func newTagCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <name>...",
		Short: "Find or create tags by name",
		Long: `Resolve each name to its canonical tag, creating the tag when nothing
matches. Names are matched the way --tag-comparison says: "exact" ignores
case only, "like" also accepts an existing tag that contains the name.

Examples:
  tagctl tag ruby "Ruby on Rails"        Resolve two names
  tagctl tag rails --tag-comparison like  Returns "Ruby on Rails" if it exists`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, cmd, v)
			if err != nil {
				return err
			}
			defer s.Close()

			resolved := make([]resolvedTag, 0, len(args))
			for _, name := range args {
				t, err := s.tags.FindOrCreate(ctx, name)
				if err != nil {
					return fmt.Errorf("tag %q: %w", name, err)
				}
				resolved = append(resolved, resolvedTag{Requested: name, Tag: t})
			}
			writeResolved(cmd.OutOrStdout(), resolved)
			return nil
		},
	}
}

func writeResolved(w io.Writer, resolved []resolvedTag) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Requested", "Tag", "Uses", "ID"})
	for _, r := range resolved {
		t.AppendRow(table.Row{r.Requested, r.Tag.Name, r.Tag.UsageCount, r.Tag.ID})
	}
	t.Render()
}
