/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"allocator/domain"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "allocator",
	Short: "In-process reference model of the DCT pool allocator",
	Long: `In-process reference model of the DCT pool allocator protocol.

It encodes deposit payloads and jetton transfer envelopes the way the
on-chain contract reads them, and replays deposit scenarios against the
allocator state machine for conformance testing.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "configuration file")
}

func initConfig() {
	domain.ReadConfig(cfgFile)
}
