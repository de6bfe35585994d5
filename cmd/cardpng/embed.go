package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ustc21xyx/cardmeta"
	"github.com/ustc21xyx/cardmeta/png"
)

var embedOpts struct {
	card  string
	out   string
	chara bool
	ccv3  bool
}

var embedCmd = &cobra.Command{
	Use:   "embed <image.png>",
	Short: "Embed a card document into a PNG file",
	Long: `Embed rewrites a PNG file with the given card document stored in
its tEXt chunks, replacing any card already present. Pixel data and
all other chunks are preserved byte for byte.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return embedFile(args[0])
	},
}

func init() {
	embedCmd.Flags().StringVar(&embedOpts.card, "card", "", "card JSON file (required)")
	embedCmd.Flags().StringVarP(&embedOpts.out, "out", "o", "", "output file (default: overwrite input)")
	embedCmd.Flags().BoolVar(&embedOpts.chara, "chara", true, "write the chara (V2) chunk")
	embedCmd.Flags().BoolVar(&embedOpts.ccv3, "ccv3", true, "write the ccv3 (V3) chunk")
	_ = embedCmd.MarkFlagRequired("card")
	rootCmd.AddCommand(embedCmd)
}

func embedFile(fn string) error {
	text, err := os.ReadFile(embedOpts.card)
	if err != nil {
		return err
	}
	card, err := cardmeta.ParseCard(text)
	if err != nil {
		return errors.Wrap(err, embedOpts.card)
	}

	var keywords []string
	if embedOpts.chara {
		keywords = append(keywords, png.KeywordChara)
	}
	if embedOpts.ccv3 {
		keywords = append(keywords, png.KeywordCCv3)
	}
	if len(keywords) == 0 {
		return errors.New("nothing to write: both --chara and --ccv3 disabled")
	}

	src, err := os.ReadFile(fn)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := cardmeta.Write(&buf, bytes.NewReader(src), card, keywords...); err != nil {
		return errors.Wrap(err, fn)
	}

	out := embedOpts.out
	if out == "" {
		out = fn
	}
	return os.WriteFile(out, buf.Bytes(), 0666)
}
