package main

import (
	"github.com/spf13/cobra"
	"github.com/tutumagi/crossaoi/config"
	"github.com/tutumagi/crossaoi/logger"
)

const serverType = "aoisim"

var (
	configPath  string
	entityCount int
	tickCount   int
	viewRadius  float32
	stepSize    float32
	seed        int64

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:               "aoisim",
		Short:             "Random walk simulation over the cross linked AOI index",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.CloseDayLog()
			_ = logger.Sync()
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run entities on a random walk, serving metrics when enabled",
		RunE:  runSimulation,
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Run a few ticks synchronously then print the index",
		RunE:  dumpSimulation,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().IntVarP(&entityCount, "entities", "n", 1000, "number of entities")
	rootCmd.PersistentFlags().IntVarP(&tickCount, "ticks", "t", 100, "number of walk steps")
	rootCmd.PersistentFlags().Float32VarP(&viewRadius, "radius", "r", -1, "view radius, negative uses aoi.space.viewradius")
	rootCmd.PersistentFlags().Float32Var(&stepSize, "step", 5, "max distance per walk step and axis")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")

	rootCmd.AddCommand(runCmd, dumpCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		c, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.NewConfig()
	}

	logger.Init(serverType, cfg.Viper())
	if logger.InitDayLog(cfg.Viper()) {
		logger.Infof("day logs enabled")
	}
	return nil
}
