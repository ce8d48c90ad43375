// Command latticewm is the daemon entry point: it opens the X
// connection, becomes the window manager, loads daemon configuration,
// optionally deserializes a --resume blob, reconciles state against the
// live window tree, and runs the event loop until told to restart or
// exit (spec.md §6 "CLI surface").
//
// Grounded on the teacher's wm.New/Init/Run/Close lifecycle
// (_examples/funkycode-marwind/wm/wm.go) and the corpus's cobra-root-command
// convention (_examples/DimaJoyti-AIOS/cmd/aios-desktop/main.go,
// _examples/Gaurav-Gosain-tuios/cmd/tuios-web/main.go).
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var resumeBlob string
	var configDir string

	root := &cobra.Command{
		Use:   "latticewm",
		Short: "A tiling window manager for X built on a pure workspace/stack algebra",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(resumeBlob, configDir)
		},
	}
	root.Flags().StringVar(&resumeBlob, "resume", "", "serialized WindowSet to resume from (internal use, set by a self-restart)")
	root.Flags().StringVar(&configDir, "config", "", "daemon configuration directory (default $HOME/.lattice)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logrus.Entry {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logrus.NewEntry(log)
}
