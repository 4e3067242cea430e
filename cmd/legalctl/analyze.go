package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/legalmind/internal/adapter/repository"
	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/internal/usecase/legal"
	"github.com/johnquangdev/legalmind/pkg/ai"
	"github.com/johnquangdev/legalmind/pkg/config"
)

// report is everything one analyze run produced
type report struct {
	Meeting  *entities.Meeting        `json:"meeting" yaml:"meeting"`
	Analysis *entities.AnalysisResult `json:"analysis" yaml:"analysis"`
	Actions  []*entities.Action       `json:"actions" yaml:"actions"`
	Insights []*entities.Insight      `json:"insights" yaml:"insights"`
}

func newAnalyzeCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "analyze <transcript.json>",
		Short: "Analyze a transcript file",
		Example: `  legalctl analyze meeting.json
  legalctl analyze meeting.json --title "Weekly sync" -o yaml
  cat meeting.json | legalctl analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required")
			}

			logger := newLogger()
			defer logger.Sync()

			client, err := ai.NewOpenAIClient(&cfg.OpenAI, nil, logger)
			if err != nil {
				return err
			}
			completer := ai.NewRetryCompleter(client, cfg.OpenAI.MaxRetries, logger)

			rep, err := runAnalyze(cmd.Context(), completer, parallel || cfg.Pipeline.Parallel, data, title, logger)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFormat, rep)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Meeting title (defaults to one derived from the current time)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Analyze domains concurrently")
	return cmd
}

// runAnalyze decodes a transcript, runs the pipeline and collects the
// materialized records
func runAnalyze(ctx context.Context, completer ai.Completer, parallel bool, data []byte, title string, logger *zap.Logger) (*report, error) {
	input, err := legal.DecodeTranscriptInput(data)
	if err != nil {
		return nil, err
	}
	input.Title = title

	repo := repository.NewTaskRepository()
	svc := legal.NewService(legal.ServiceDeps{
		Repo:         repo,
		Pipeline:     legal.NewPipeline(completer, parallel, nil, logger),
		Materializer: legal.NewMaterializer(repo, nil, logger),
		Logger:       logger,
	})

	out, err := svc.AnalyzeTranscript(ctx, input)
	if err != nil {
		return nil, err
	}
	details, err := svc.GetMeeting(ctx, out.MeetingID)
	if err != nil {
		return nil, err
	}

	return &report{
		Meeting:  details.Meeting,
		Analysis: out.Analysis,
		Actions:  details.Actions,
		Insights: details.Insights,
	}, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return data, nil
}

// writeOutput prints v as indented JSON or as YAML. YAML goes through the
// JSON encoding so both formats share field names and custom marshalers.
func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(generic)
	}
	return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
}
