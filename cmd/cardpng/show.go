package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ustc21xyx/cardmeta"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <file>...",
	Short: "Print the character card embedded in PNG files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, fn := range args {
			showFile(fn)
		}
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the raw card document")
	rootCmd.AddCommand(showCmd)
}

func showFile(fn string) {
	f, err := os.Open(fn)
	if err != nil {
		log.Println(err)
		return
	}
	defer f.Close()

	card, kw, err := cardmeta.Read(f)
	if err != nil {
		log.Printf("%s: %s", fn, err)
		return
	}

	if showJSON {
		p, err := card.JSON()
		if err != nil {
			log.Printf("%s: %s", fn, err)
			return
		}
		fmt.Printf("%s\n", p)
		return
	}

	fmt.Printf("%s:\n", fn)
	fmt.Printf("  keyword: %s\n", kw)
	if v := card.Version(); v != "" {
		fmt.Printf("  spec: %s %s\n", v, card.SpecVersion)
	} else {
		fmt.Printf("  spec: v1 (legacy)\n")
	}

	d := card.Fields()
	fmt.Printf("  name: %s\n", d.Name)
	if d.Creator != "" {
		fmt.Printf("  creator: %s\n", d.Creator)
	}
	if d.CharacterVersion != "" {
		fmt.Printf("  version: %s\n", d.CharacterVersion)
	}
	if len(d.Tags) > 0 {
		fmt.Printf("  tags: %s\n", strings.Join(d.Tags, ", "))
	}
}
