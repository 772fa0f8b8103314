package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veracity/internal/logger"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
)

var (
	analyzeFile   string
	analyzeDomain string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Score a piece of news text",
	Long: `Analyze news text and print the credibility result as JSON.

The text comes from the argument, --file, or stdin. Pass --domain when
the text was extracted from a known publisher so the source-reputation
signal participates in the score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read text from file")
	analyzeCmd.Flags().StringVarP(&analyzeDomain, "domain", "d", "", "source domain the text was extracted from")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readAnalyzeText(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	analyzer, err := pipeline.New(cfg, logger.New("veracity"))
	if err != nil {
		return err
	}

	in := model.TextInput(text)
	if analyzeDomain != "" {
		in = model.URLInput(text, analyzeDomain)
	}

	result, err := analyzer.Analyze(cmd.Context(), in)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readAnalyzeText(args []string) (string, error) {
	if len(args) == 1 && analyzeFile != "" {
		return "", fmt.Errorf("pass text as an argument or via --file, not both")
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", analyzeFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no text provided: pass an argument, --file, or pipe to stdin")
	}
	return string(data), nil
}
