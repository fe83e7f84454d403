/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"allocator/domain"
	"allocator/usecase"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// simulateCmd replays a scenario file against a fresh allocator.
var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario file]",
	Short: "Replays a deposit scenario against the allocator",
	Long: `Replays a scenario file against a fresh allocator instance, printing
every credited event and rejection. When a journal database is configured,
router forwards and the final state snapshot are journaled.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("simulate called.")

		defaultDependencyInject()

		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("🔴 reading scenario file - %v\n", err.Error())
		}

		steps, err := usecase.ParseScenario(data)
		if err != nil {
			log.Fatalf("🔴 parsing scenario file - %v\n", err.Error())
		}

		interactor := usecase.NewScenarioInteractor(allocator, journalInteractor, domain.GetFxRate())
		if err := interactor.Run(steps); err != nil {
			log.Fatalf("🔴 running scenario - %v\n", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
