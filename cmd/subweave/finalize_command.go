package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subweave/internal/config"
	"subweave/internal/finalize"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/subtitle"
)

// newFinalizeCommand runs the finalization engine on an existing segments
// file without going through the queue. Useful for reprocessing a
// transcript with changed typesetting settings.
func newFinalizeCommand(ctx *commandContext) *cobra.Command {
	var language string
	var title string

	cmd := &cobra.Command{
		Use:   "finalize <segments.json>",
		Short: "Finalize a segments file into caption artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			input, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			lang := strings.TrimSpace(language)
			if lang == "" {
				if len(cfg.Languages.Targets) == 0 {
					return fmt.Errorf("no target language configured; pass --language")
				}
				lang = cfg.Languages.Targets[0]
			}

			name := strings.TrimSpace(title)
			if name == "" {
				base := filepath.Base(input)
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			job := &queue.Job{
				Title:          name,
				TargetLanguage: lang,
				TranslatedFile: input,
			}

			st := finalize.New(cfg, logging.NewNop())
			if err := st.Prepare(cmd.Context(), job); err != nil {
				return err
			}
			if err := st.Execute(cmd.Context(), job); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Artifacts written to %s\n", job.ArtifactDir)

			var report subtitle.QAReport
			if err := json.Unmarshal([]byte(job.QAReportJSON), &report); err == nil {
				fmt.Fprintf(out, "Segments: %d  Cues: %d  Merges: %d\n",
					report.InputSegments, report.OutputCues, report.Merges)
				if report.OverTightCPS > 0 || report.LongLines > 0 || report.Overlaps > 0 {
					fmt.Fprintf(out, "QA flags: over_tight_cps=%d long_lines=%d overlaps=%d\n",
						report.OverTightCPS, report.LongLines, report.Overlaps)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Target language for typesetting policy (defaults to first configured target)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Delivery title (defaults to the input file name)")
	return cmd
}
