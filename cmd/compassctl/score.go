package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lernwerk/compass/pkg/compass"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	scoreApplicantFile  string
	scoreCandidatesFile string
	scoreQuizFile       string
	scoreMinScore       float64
	scoreBatchSize      int
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank candidate apprenticeships for one applicant",
	Long: `Reads an applicant and a list of candidates as JSON and prints the ranking.

The applicant file holds one object (region, interests, traits, ...), the
candidates file an array of objects (id, region, track, category, ...).
A quiz result written by the API can supply the applicant's vectors.

Examples:
  compassctl score --applicant applicant.json --candidates candidates.json
  compassctl score -a applicant.json -c candidates.json --quiz result.json --batch-size 5`,
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVarP(&scoreApplicantFile, "applicant", "a", "", "applicant JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreCandidatesFile, "candidates", "c", "", "candidates JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreQuizFile, "quiz", "", "quiz result JSON file providing traits and work values")
	scoreCmd.Flags().Float64Var(&scoreMinScore, "min-score", 0, "drop results scoring below this value (0-1)")
	scoreCmd.Flags().IntVar(&scoreBatchSize, "batch-size", compass.DefaultBatchSize, "maximum number of results")
	_ = scoreCmd.MarkFlagRequired("applicant")
	_ = scoreCmd.MarkFlagRequired("candidates")
}

func runScore(cmd *cobra.Command, _ []string) (err error) {
	var applicant compass.Applicant
	err = readJSON(scoreApplicantFile, &applicant)
	if err != nil {
		return err
	}

	var candidates []compass.Candidate
	err = readJSON(scoreCandidatesFile, &candidates)
	if err != nil {
		return err
	}

	if scoreQuizFile != "" {
		var res compass.QuizResult
		err = readJSON(scoreQuizFile, &res)
		if err != nil {
			return err
		}
		applicant = res.Apply(applicant)
	}

	var engine *compass.Engine
	engine, err = newEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	var ranking compass.Ranking
	ranking, err = engine.Score(cmd.Context(), applicant, candidates, compass.ScoreOptions{
		MinScore:  scoreMinScore,
		BatchSize: scoreBatchSize,
	})
	if err != nil {
		err = errors.Wrap(err, "scoring failed")
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	err = enc.Encode(ranking)
	if err != nil {
		err = errors.Wrap(err, "failed to write ranking")
		return err
	}
	return err
}

func readJSON(path string, dst any) (err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", path)
		return err
	}
	err = json.Unmarshal(data, dst)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s", path)
		return err
	}
	return err
}
