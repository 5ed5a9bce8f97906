package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tickCount int

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run a fixed number of ticks and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApplication(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		for i := 0; i < tickCount; i++ {
			report := a.loop.Once(cmd.Context(), logger)
			for _, cr := range report.Colonies {
				fields := []zap.Field{
					zap.Int64("tick", report.Tick),
					zap.String("colony", cr.Colony),
					zap.Int("population", cr.Population),
					zap.Int("demand", cr.Demand.Total),
					zap.Int("queued", cr.Queued),
					zap.Int("switched", cr.Switched),
				}
				if cr.Result.Issued {
					fields = append(fields, zap.String("produced", string(cr.Result.Request.Role)))
				}
				if cr.Err != nil {
					fields = append(fields, zap.Error(cr.Err))
				}
				logger.Info("tick", fields...)
			}
		}
		return nil
	},
}

func init() {
	tickCmd.Flags().IntVarP(&tickCount, "count", "n", 1, "Number of ticks to run")
}
