package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docqa/internal/domain"
)

func newAskCommand(opts *globalOptions) *cobra.Command {
	var (
		question string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "ask [paths...]",
		Short: "Answer one question and exit",
		Long: `Indexes the given documents, retrieves the passages most similar to the
question and prints them as a grounded answer followed by its references.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if question == "" {
				return errors.New("--question is required")
			}
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			msgs, err := a.engine.IngestPaths(cmd.Context(), args)
			for _, m := range msgs {
				a.log.Debug(m)
			}
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			ans, err := a.engine.Ask(question)
			if err != nil {
				return fmt.Errorf("ask failed: %w", err)
			}
			if asJSON {
				return outputAnswerJSON(cmd, ans)
			}
			outputAnswerText(cmd, ans)
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "question to answer")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the answer as JSON")
	return cmd
}

func outputAnswerJSON(cmd *cobra.Command, ans domain.Answer) error {
	data, err := json.MarshalIndent(ans, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, ans domain.Answer) {
	fmt.Fprintln(cmd.OutOrStdout(), ans.Text)
	if len(ans.References) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "References:")
	for i, r := range ans.References {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s (pages %s) score=%.3f\n", i+1, r.DocumentID, joinPages(r.Pages), r.Score)
	}
}
