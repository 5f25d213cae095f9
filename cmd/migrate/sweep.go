package main

import (
	"log"

	"github.com/spf13/cobra"

	"pomodoroclock/backend/internal/config"
	"pomodoroclock/backend/internal/repository"
	"pomodoroclock/backend/internal/service"
)

func sweepCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete lists whose expiresAt has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDatabase(*cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			lists := service.NewListService(
				repository.NewListRepository(database),
				repository.NewTaskRepository(database),
			)
			removed, apiErr := lists.SweepExpired(cmd.Context())
			if apiErr != nil {
				return apiErr
			}

			log.Printf("removed %d expired lists", removed)
			return nil
		},
	}
}
