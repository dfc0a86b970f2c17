package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
)

func newCheckCmd() *cobra.Command {
	var (
		photographer string
		date         string
		selectedTime string
		name         string
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check photographer availability at a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			photographerID, err := domain.ParsePhotographerID(photographer)
			if err != nil {
				return err
			}

			cfg, service, err := newOneShotService(quiet)
			if err != nil {
				return err
			}

			checkDate, err := utils.ParseDate(date, cfg.Location())
			if err != nil {
				return err
			}

			result := service.CheckPhotographerAvailabilityAtTime(cmd.Context(), photographerID, checkDate, selectedTime, name)

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&photographer, "photographer", "", "photographer id")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&selectedTime, "time", "", `time, "10:00 AM" or "10:00"`)
	cmd.Flags().StringVar(&name, "name", "", "photographer name for logs")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "log errors only")
	_ = cmd.MarkFlagRequired("photographer")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		photographers []string
		date          string
		selectedTime  string
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Check availability of several photographers at a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			photographerIDs, err := parsePhotographerIDs(photographers)
			if err != nil {
				return err
			}

			cfg, service, err := newOneShotService(quiet)
			if err != nil {
				return err
			}

			checkDate, err := utils.ParseDate(date, cfg.Location())
			if err != nil {
				return err
			}

			result := service.GetPhotographersAvailability(cmd.Context(), photographerIDs, checkDate, selectedTime, nil)

			return printJSON(cmd, map[string]any{"results": result})
		},
	}

	cmd.Flags().StringSliceVar(&photographers, "photographers", nil, "photographer ids, comma separated")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&selectedTime, "time", "", `time, "10:00 AM" or "10:00"`)
	cmd.Flags().BoolVar(&quiet, "quiet", false, "log errors only")
	_ = cmd.MarkFlagRequired("photographers")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func parsePhotographerIDs(values []string) ([]domain.PhotographerID, error) {
	ids := make([]domain.PhotographerID, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		id, err := domain.ParsePhotographerID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(cmd *cobra.Command, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
