package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newChunksCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "chunks [paths...]",
		Short: "List the chunks produced for the given documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			docs, _, err := a.loader.Load(args)
			if err != nil {
				return err
			}
			corpus, err := a.engine.Chunk(docs)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := json.MarshalIndent(corpus, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal chunks: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			for _, c := range corpus {
				fmt.Fprintf(cmd.OutOrStdout(), "%s [%d,%d) pages=%s len=%d\n", c.ID, c.Start, c.End, joinPages(c.Pages), len([]rune(c.Text)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output chunks as JSON")
	return cmd
}
