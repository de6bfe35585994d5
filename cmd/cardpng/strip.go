package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ustc21xyx/cardmeta"
)

var stripOut string

var stripCmd = &cobra.Command{
	Use:   "strip <image.png>",
	Short: "Remove embedded character cards from a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return stripFile(args[0])
	},
}

func init() {
	stripCmd.Flags().StringVarP(&stripOut, "out", "o", "", "output file (default: overwrite input)")
	rootCmd.AddCommand(stripCmd)
}

func stripFile(fn string) error {
	src, err := os.ReadFile(fn)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := cardmeta.Strip(&buf, bytes.NewReader(src)); err != nil {
		return errors.Wrap(err, fn)
	}

	out := stripOut
	if out == "" {
		out = fn
	}
	return os.WriteFile(out, buf.Bytes(), 0666)
}
