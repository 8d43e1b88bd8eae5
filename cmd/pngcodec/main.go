// Command pngcodec inspects, re-encodes and converts PNG images.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pngcodec"
)

var (
	cfg       Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "pngcodec",
	Short:         "Inspect, re-encode and convert PNG images",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := LoadConfig(path)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			c.LogLevel = "debug"
		}
		logger, closer, err := newLogger(c)
		if err != nil {
			return err
		}
		cfg, logCloser = c, closer
		pngcodec.SetLogger(logger)
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log codec activity at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
