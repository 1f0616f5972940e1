package main

import (
	"fmt"
	"strings"

	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/utils"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show game metadata and the chunk directory of an archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive()
		if err != nil {
			return err
		}

		g, err := a.DecodeGeneral()
		if err != nil {
			return fmt.Errorf("reading game metadata: %w", err)
		}

		fmt.Printf("Name:          %s\n", g.Name)
		fmt.Printf("Display name:  %s\n", g.DisplayName)
		fmt.Printf("Version:       %s\n", g.Version())
		fmt.Printf("Game ID:       %d\n", g.GameID)
		fmt.Printf("Window:        %dx%d\n", g.DefaultWindowWidth, g.DefaultWindowHeight)
		if g.SteamAppID != 0 {
			fmt.Printf("Steam app:     %d\n", g.SteamAppID)
		}
		fmt.Printf("Archive size:  %s bytes\n", utils.Number(int64(a.Size())))
		fmt.Printf("Audio groups:  %d\n", a.AudioGroups())
		if known, err := utils.IsKnownLayout(g.Version()); err == nil && !known {
			fmt.Printf("Warning:       engine %s is newer than the supported layouts\n", g.Version())
		}

		dir := a.Directory()
		fmt.Println()
		fmt.Printf("%-6s %12s %12s  %s\n", "Chunk", "Offset", "Length", "Decoder")
		fmt.Println(strings.Repeat("-", 44))
		for _, tag := range dir.Tags() {
			off, _ := dir.Offset(tag)
			length, _ := dir.Length(tag)

			decoder := "-"
			if kind, ok := chunk.Lookup(tag); ok {
				decoder = kind.String()
			}
			fmt.Printf("%-6s %12d %12s  %s\n", tag, off, utils.Number(length), decoder)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
