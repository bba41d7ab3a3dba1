// Command chatserver runs one replica of the broadcast chat cluster.
package main

import (
	"fmt"
	"os"

	"github.com/isascarabelli/Chat-Distribuido/internal/bootstrap"
	"github.com/isascarabelli/Chat-Distribuido/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.NewEntry(logrus.StandardLogger())

	cmd := &cobra.Command{
		Use:   "chatserver",
		Short: "Runs one replica of the Lamport/Bully broadcast chat cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			srv, err := bootstrap.New(cfg, log)
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}
			return srv.Run()
		},
	}
	config.BindFlags(cmd)

	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("chatserver exited with error")
		os.Exit(1)
	}
}
