package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"finqa/internal/config"
	"finqa/internal/corpus"
	"finqa/internal/qa"
	"finqa/internal/retrieval"
)

var askCmd = &cobra.Command{
	Use:   "ask <dataset.json> <question>",
	Short: "Ask one question against the best-matching document",
	Args:  cobra.ExactArgs(2),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("show-reasoning", false, "print the model's reasoning steps")
	askCmd.Flags().Bool("show-document", false, "print the retrieved document context")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	dataset, question := args[0], args[1]

	docs, err := corpus.Load(dataset)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("dataset %s has no documents", dataset)
	}

	ranker, err := retrieval.NewRanker(cfg.TopK, retrieval.DefaultWeights())
	if err != nil {
		return err
	}
	ranked := ranker.RankQuestion(docs, question, retrieval.KeywordOptions{MinTokenLen: cfg.MinKeywordLen})
	if len(ranked) == 0 {
		return fmt.Errorf("no document matched the question")
	}
	doc := ranked[0]
	fmt.Printf("%s retrieved %s\n", cyan("•"), doc.ID)

	if show, _ := cmd.Flags().GetBool("show-document"); show {
		fmt.Println(gray(corpus.FormatContext(doc)))
	}

	generator, err := qa.NewOpenAIGenerator(cfg)
	if err != nil {
		return err
	}
	prediction, err := generator.Answer(cmd.Context(), doc, question)
	if err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("show-reasoning"); show && prediction.Reasoning != "" {
		fmt.Println()
		for _, step := range strings.Split(prediction.Reasoning, "\n") {
			fmt.Println(gray("  " + step))
		}
	}

	fmt.Println()
	fmt.Printf("%s %s\n", green("answer:"), bold(prediction.Answer))
	fmt.Printf("%s %s, %d tokens\n", gray("took:"), prediction.Latency.Round(time.Millisecond), prediction.Usage.TotalTokens)
	return nil
}
