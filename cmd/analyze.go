package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/analyzer"
	"github.com/spigell/skillgap/internal/extract"
)

const (
	PromptShowGaps   = "Show missing skills"
	PromptShowReport = "Show full report"
	PromptDumpReport = "Dump report to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowGaps, PromptShowReport, PromptDumpReport, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Predict the role of a resume and list missing skills",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume file to analyze")
	analyzeCmd.Flags().String("jd", "", "job description file to compare against")
	analyzeCmd.Flags().String("role", "", "target role to compare against")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "print missing skills and exit without the interactive menu")

	analyzeCmd.MarkFlagRequired("resume")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()
	a := newAnalyzer(ctx, config, logger)

	req, err := buildRequest(cmd, logger)
	if err != nil {
		logger.Fatal("reading inputs", zap.Error(err))
	}

	report, err := a.Analyze(ctx, req)
	if err != nil {
		logger.Fatal("analyzing resume", zap.Error(err))
	}

	logger.Info("analysis result",
		zap.String("predicted role", report.PredictedRole),
		zap.String("compared with", fmt.Sprintf("%s (%s)", report.Target.Label, report.Target.Kind)),
		zap.Float64("match percent", report.MatchPercent),
		zap.Int("missing skills", len(report.MissingSkills)),
	)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		runAction(PromptShowGaps, logger, report)
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if runAction(action, logger, report) {
			return
		}
	}
}

// runAction reports whether the user asked to exit. Any other failure is fatal.
func runAction(action string, logger *zap.Logger, report *analyzer.Report) bool {
	err := handleAction(action, logger, report)
	if err == nil {
		return false
	}
	if errors.Is(err, errExit) {
		return true
	}
	logger.Fatal("exiting", zap.Error(err))
	return true
}

func buildRequest(cmd *cobra.Command, logger *zap.Logger) (analyzer.Request, error) {
	var req analyzer.Request

	path, _ := cmd.Flags().GetString("resume")
	file, err := os.Open(path)
	if err != nil {
		return req, fmt.Errorf("open resume: %w", err)
	}
	defer file.Close()

	text, kind, err := extract.Read(path, file)
	switch {
	case errors.Is(err, extract.ErrNoText):
		logger.Warn("no text extracted from resume, analyzing empty text",
			zap.String("file", path),
			zap.Stringer("kind", kind),
		)
	case err != nil:
		return req, err
	}
	req.Resume = text

	if jdPath, _ := cmd.Flags().GetString("jd"); jdPath != "" {
		data, err := os.ReadFile(jdPath)
		if err != nil {
			return req, fmt.Errorf("read job description: %w", err)
		}
		req.JobDescription = string(data)
	}

	req.TargetRole, _ = cmd.Flags().GetString("role")
	return req, nil
}

func handleAction(action string, logger *zap.Logger, report *analyzer.Report) error {
	switch action {
	case PromptShowGaps:
		if len(report.MissingSkills) == 0 {
			logger.Info("no missing skills found")
			return nil
		}
		for _, gap := range report.MissingSkills {
			advice := gap.Advice
			if advice == "" {
				advice = "no advice available"
			}
			logger.Info(fmt.Sprintf("missing: %s", gap.Skill),
				zap.String("advice", advice),
				zap.String("source", string(gap.AdviceSource)),
			)
		}
		return nil
	case PromptShowReport:
		var b strings.Builder
		fmt.Fprintf(&b, "Resume preview:\n%s\n\n", report.ResumePreview)
		fmt.Fprintf(&b, "Predicted job role: %s\n", report.PredictedRole)
		fmt.Fprintf(&b, "Match: %.2f%% against %s\n", report.MatchPercent, report.Target.Label)
		logger.Info(b.String(), zap.String("report id", report.ID))
		return nil
	case PromptDumpReport:
		filename, err := report.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
