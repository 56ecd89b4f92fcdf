package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/graph4kg/internal/place"
)

func newPlacesCmd(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "places",
		Short: "Print the selected CUDA devices",
		Long: `places resolves the CUDA devices for this process from
FLAGS_selected_gpus. When the variable is unset all devices reported by
NVML are selected. Hosts without NVML fall back to CPU.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var counter place.DeviceCounter = place.NewNVMLCounter()
			if count >= 0 {
				counter = place.StaticCounter(count)
			}

			ids, err := place.NewSelector(counter, opts.logger).CUDAPlaces()
			if errors.Is(err, place.ErrNVMLUnavailable) {
				opts.logger.Warn("NVML unavailable, assuming no CUDA devices", zap.Error(err))
				ids, err = place.NewSelector(place.StaticCounter(0), opts.logger).CUDAPlaces()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s=%s\n", place.EnvSelectedGPUs, place.FormatDeviceIDs(ids))
			for _, p := range place.Places(ids) {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", -1, "use a fixed device count instead of NVML")
	return cmd
}
