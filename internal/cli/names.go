package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newNamesCommand(v *viper.Viper) *cobra.Command {
	var (
		sorted bool
		like   string
	)
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Print every tag name, one per line",
		Long: `Print every canonical tag name, one per line.

Examples:
  tagctl names                 All tag names in storage order
  tagctl names --sorted        All tag names, alphabetically
  tagctl names --like rub      Tags whose name contains "rub", ignoring case`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, cmd, v)
			if err != nil {
				return err
			}
			defer s.Close()

			var names []string
			if like != "" {
				tags, err := s.tags.NamedLike(ctx, like)
				if err != nil {
					return err
				}
				for _, t := range tags {
					names = append(names, t.Name)
				}
			} else if names, err = s.tags.Names(ctx, sorted); err != nil {
				return err
			}

			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sorted, "sorted", false, "sort names alphabetically")
	cmd.Flags().StringVar(&like, "like", "", "only tags whose name contains this fragment (always sorted)")
	return cmd
}
