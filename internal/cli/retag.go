package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/tagengine/internal/domain"
	"github.com/pkordes/tagengine/internal/service"
)

func newRetagCommand(v *viper.Viper) *cobra.Command {
	var taggerType, taggerID string
	cmd := &cobra.Command{
		Use:   `retag <type> <id> <context> "<tag list>"`,
		Short: "Replace an entity's tags in one context",
		Long: `Replace the tags of one entity in one context and print what changed.
The tag list is comma-separated; quote names that contain commas.
An empty list removes every tag in the context.

Examples:
  tagctl retag Post 1 tags 'ruby, go'
  tagctl retag Post 1 skills '"c, d", rust' --tagger-type User --tagger-id 7`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagger := domain.Ref{Type: taggerType, ID: taggerID}
			if (taggerType == "") != (taggerID == "") {
				return errors.New("--tagger-type and --tagger-id must be set together")
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, cmd, v)
			if err != nil {
				return err
			}
			defer s.Close()

			taggable := domain.Ref{Type: args[0], ID: args[1]}
			tagContext := args[2]
			cache := service.NewOwnershipCache(s.taggings, taggable)

			before, err := cache.Get(ctx, tagger, tagContext)
			if err != nil {
				return err
			}
			after := domain.ParseTagList(args[3])
			if err := cache.Set(tagger, tagContext, after); err != nil {
				return err
			}
			if err := cache.Flush(ctx); err != nil {
				return err
			}

			writeDiff(cmd.OutOrStdout(), before, after)
			return nil
		},
	}
	cmd.Flags().StringVar(&taggerType, "tagger-type", "", "type of the owner the tags are credited to")
	cmd.Flags().StringVar(&taggerID, "tagger-id", "", "id of the owner the tags are credited to")
	return cmd
}

// writeDiff prints the names added and removed going from before to after,
// then the resulting list.
func writeDiff(w io.Writer, before, after domain.TagList) {
	added := after.Difference(before)
	removed := before.Difference(after)
	if added.Len() == 0 && removed.Len() == 0 {
		fmt.Fprintln(w, "unchanged")
	}
	for _, n := range added.Names() {
		fmt.Fprintf(w, "+ %s\n", n)
	}
	for _, n := range removed.Names() {
		fmt.Fprintf(w, "- %s\n", n)
	}
	fmt.Fprintf(w, "tags: %s\n", after)
}
