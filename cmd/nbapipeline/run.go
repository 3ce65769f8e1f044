package main

import (
	"github.com/spf13/cobra"

	"github.com/festy23/nba_pipeline/internal/database/database"
	gameRepository "github.com/festy23/nba_pipeline/internal/game/repository"
	gameService "github.com/festy23/nba_pipeline/internal/game/service"
	"github.com/festy23/nba_pipeline/internal/pipeline"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		dataRoot     string
		outputDir    string
		sourceFormat string
		minYear      int
		maxYear      int
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the cleaning pipeline once",
		Long: `Loads game_info, game_summary, team and line_score, reconciles them into one
record per game, filters the season window, derives features and writes
clean_games.csv and data_summary.txt. With DB_DRIVER set the cleaned games
are also published to the store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Pipeline
			flags := cmd.Flags()
			if flags.Changed("data-root") {
				cfg.DataRoot = dataRoot
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("source-format") {
				cfg.SourceFormat = sourceFormat
			}
			if flags.Changed("min-year") {
				cfg.MinYear = minYear
			}
			if flags.Changed("max-year") {
				cfg.MaxYear = maxYear
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}

			ctx := cmd.Context()
			db, err := a.openStore(ctx)
			if err != nil {
				a.logger.Errorw("store unavailable", "error", err)
				return err
			}

			var store pipeline.Store
			if db != nil {
				defer func() { _ = database.Close(db) }()
				store = gameService.New(gameRepository.New(db, a.logger), db, a.logger)
			}

			p, err := pipeline.NewFromConfig(cfg, store, a.logger)
			if err != nil {
				a.logger.Errorw("invalid pipeline configuration", "error", err)
				return err
			}

			result, err := p.Run(ctx)
			if err != nil {
				return err
			}

			cmd.Printf("Cleaned %d games -> %s\n", len(result.Games), result.Artifacts.GamesPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataRoot, "data-root", "", "directory holding the source tables (DATA_ROOT)")
	flags.StringVar(&outputDir, "output-dir", "", "directory receiving the artifacts (OUTPUT_DIR)")
	flags.StringVar(&sourceFormat, "source-format", "", "csv or sqlite (SOURCE_FORMAT)")
	flags.IntVar(&minYear, "min-year", 0, "first calendar year kept (PIPELINE_MIN_YEAR)")
	flags.IntVar(&maxYear, "max-year", 0, "last calendar year kept (PIPELINE_MAX_YEAR)")
	flags.BoolVar(&verbose, "verbose", false, "log validation distributions at info level (PIPELINE_VERBOSE)")
	return cmd
}
