package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verity-labs/verity/internal/core/domain"
)

var (
	askScope     string
	askRequester string
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the ingested evidence",
	Long: `Retrieves matching document chunks and web results, sends the bounded
evidence to the configured language model and prints the answer with its
governance report and sources. The exchange is recorded in the audit log.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askScope, "scope", "", "organisation scope (required)")
	askCmd.Flags().StringVar(&askRequester, "requester", "", "requesting actor identity (required)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full answer object as JSON")
	_ = askCmd.MarkFlagRequired("scope")
	_ = askCmd.MarkFlagRequired("requester")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured; set an LLM provider in the config")
	}

	answer, err := answerService.Answer(context.Background(), args[0], askRequester, askScope)
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputAnswer(cmd, answer)
}

func outputAnswer(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Response)
	cmd.Println()

	if len(answer.Sources) > 0 {
		cmd.Println("Sources:")
		for i, source := range answer.Sources {
			cmd.Printf("  [%d] %s\n", i+1, source.Name)
		}
		cmd.Println()
	}

	gov := answer.Governance
	label := "governance"
	if gov.Fallback {
		label = "governance (fallback)"
	}
	cmd.Printf("%s: confidence=%d uncertainty=%d risk=%d", label,
		gov.Scores.Confidence, gov.Scores.Uncertainty, gov.Scores.Risk)
	if gov.Hallucination {
		cmd.Print(" HALLUCINATION")
	}
	if gov.Contradiction {
		cmd.Print(" CONTRADICTION")
	}
	cmd.Println()
	return nil
}
