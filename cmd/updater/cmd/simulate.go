package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tellapart/aurora/internal/common/config"
	"github.com/tellapart/aurora/internal/updater"
	"github.com/tellapart/aurora/internal/updater/simulate"
)

// Simulate builds the "simulate" subcommand: it loads a scenario file and
// replays it through a fresh Engine, printing the Result at every tick.
// This exercises the engine's public contract exactly as an orchestrator
// would, without performing the orchestrator's actual kill/replace work.
func Simulate() *cobra.Command {
	var scenarioPath string
	var configDir string

	command := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a scripted observation sequence through the update engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := updater.DefaultEngineConfig()
			if configDir != "" {
				if err := config.Load(&defaults, configDir); err != nil {
					return err
				}
			}

			scenario, err := simulate.LoadScenario(scenarioPath)
			if err != nil {
				return err
			}

			results, err := simulate.Run(scenario, defaults)
			if err != nil {
				return err
			}

			for _, r := range results {
				if r.Err != nil {
					log.WithField("clock_ms", r.ClockMs).Errorf("evaluate failed: %v", r.Err)
					continue
				}
				fmt.Println(r.String())
			}
			return nil
		},
	}

	command.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a scenario YAML file")
	command.Flags().StringVarP(&configDir, "config", "c", "", "directory containing config.yaml with engine tuning defaults")
	_ = command.MarkFlagRequired("scenario")

	return command
}
