package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/dataset"
	"github.com/spigell/skillgap/internal/logger"
	"github.com/spigell/skillgap/internal/trainer"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the vectorizer and classifier from resume and job description datasets",
	Run: func(_ *cobra.Command, _ []string) {
		train()
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().String("resumes", "", "resume dataset (csv or xlsx)")
	trainCmd.Flags().String("job-descriptions", "", "job description dataset (csv or xlsx)")
	trainCmd.Flags().StringP("out-dir", "o", "", "directory for the trained artifacts")

	viper.BindPFlag("train.resumes.path", trainCmd.Flags().Lookup("resumes"))
	viper.BindPFlag("train.job-descriptions.path", trainCmd.Flags().Lookup("job-descriptions"))
	viper.BindPFlag("train.out-dir", trainCmd.Flags().Lookup("out-dir"))
}

func train() {
	log, config := setup()
	if config.Train == nil {
		log.Fatal("train section is required")
	}

	var tables [][]dataset.Sample
	for _, src := range []dataset.Source{config.Train.Resumes, config.Train.JobDescriptions} {
		samples, err := dataset.Load(src)
		if err != nil {
			log.Fatal("loading dataset", zap.Error(err))
		}
		log.Info("dataset loaded", zap.String("path", src.Path), zap.Int("rows", len(samples)))
		tables = append(tables, samples)
	}

	res, err := trainer.Train(dataset.Concat(tables...), config.Train.Options, log)
	if err != nil {
		log.Fatal("training failed", zap.Error(err))
	}

	fmt.Printf("accuracy on test set: %v\n", res.Accuracy)

	vecPath, clfPath, err := trainer.Save(res, config.Train.OutDir)
	if err != nil {
		log.Fatal("saving artifacts", zap.Error(err))
	}

	log.Info("artifacts saved", append(
		logger.ArtifactFields(vecPath, clfPath, res.Vectorizer.Dim()),
		zap.Int("train", res.Train),
		zap.Int("test", res.Test),
	)...)
}
