package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/sentiment"
	"github.com/JaimeStill/moodai/pkg/logging"
)

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Classify text into a mood label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewWithWriter(&logging.Config{Level: opts.logLevel}, os.Stderr)
			if err != nil {
				return err
			}

			classifier := mood.NewClassifier(sentiment.NewLexicon(), logger)
			res, err := classifier.Classify(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mood:      %s\n", res.Label)
			fmt.Fprintf(out, "color:     %s\n", mood.Color(res.Label))
			fmt.Fprintf(out, "score:     %d\n", mood.Score(res.Label))
			fmt.Fprintf(out, "sentiment: %d\n", res.Sentiment)
			return nil
		},
	}
}
