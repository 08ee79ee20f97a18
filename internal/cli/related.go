package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/tagengine/internal/domain"
)

func newRelatedCommand(v *viper.Viper) *cobra.Command {
	var (
		target string
		result string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "related <type> <id> <context>",
		Short: "Rank entities that share tags with an entity",
		Long: `Rank entities by how many distinct tags they share with an entity's tags in
a context, most shared first.

Examples:
  tagctl related Post 1 tags
  tagctl related Post 1 skills --target User --result interests`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, cmd, v)
			if err != nil {
				return err
			}
			defer s.Close()

			entity := domain.Ref{Type: args[0], ID: args[1]}
			targetType := target
			if targetType == "" {
				targetType = entity.Type
			}

			var related []domain.Related
			if result != "" {
				related, err = s.relations.MatchingContexts(ctx, entity, args[2], result, targetType, limit)
			} else {
				related, err = s.relations.RelatedEntities(ctx, entity, args[2], targetType, limit)
			}
			if err != nil {
				return err
			}
			return writeRelated(cmd.OutOrStdout(), related)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "type of the entities to rank (default: the entity's own type)")
	cmd.Flags().StringVar(&result, "result", "", "match the target's tags in this context instead of <context>")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results; 0 for all")
	return cmd
}

func writeRelated(w io.Writer, related []domain.Related) error {
	if len(related) == 0 {
		_, err := fmt.Fprintln(w, "no related entities")
		return err
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Entity", "Shared"})
	for _, r := range related {
		t.AppendRow(table.Row{r.Ref.String(), r.Count})
	}
	t.Render()
	return nil
}

// newTable returns a borderless table writer that renders to w.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}
