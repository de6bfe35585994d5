package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cardpng",
	Short: "Inspect and rewrite character cards embedded in PNG files",
	Long: `cardpng reads and writes the character-card documents that chat
frontends embed in the tEXt chunks of PNG portraits, under the
"chara" (Character Card V2) and "ccv3" (Character Card V3) keywords.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
