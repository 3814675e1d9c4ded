package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mia/internal/config"
	"mia/internal/fserr"
	"mia/internal/listing"
	"mia/internal/resolve"
	"mia/internal/search"
	"mia/internal/textutil"
	"mia/internal/tree"
)

func newTreeCommand(ctx *commandContext) *cobra.Command {
	var depth int
	var all bool
	var ascii bool

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Show a folder as a tree",
		Long: `Show a folder as a tree, directories first.

Symbolic links to directories are shown but not entered, so a linked subtree
never appears twice and link cycles cannot loop.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			maxDepth := tree.Unlimited
			if cmd.Flags().Changed("depth") {
				if depth < 0 {
					return fmt.Errorf("%w: --depth must be zero or greater, got %d", fserr.ErrInvalidInput, depth)
				}
				maxDepth = depth
			}
			logger, _, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			root, err := resolve.Dir(pathArg(args, 0))
			if err != nil {
				return err
			}

			glyphs := tree.BoxGlyphs
			if ascii || cfg.Display.Glyphs == config.GlyphsASCII {
				glyphs = tree.ASCIIGlyphs
			}
			lister := listing.New(ctx.fs, listing.Options{IncludeHidden: all || cfg.Display.ShowHidden})
			renderer := tree.New(lister, tree.Options{
				MaxDepth: maxDepth,
				Glyphs:   glyphs,
				Exclude:  ctx.excludeMatcher(),
			}, logger)

			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Display.Color)
			unreadable := 0
			for line, err := range renderer.Lines(root) {
				if err != nil {
					unreadable++
					continue
				}
				name := line.Name
				if line.Kind == listing.KindDir {
					name = p.dirName(name)
				}
				p.line(line.Prefix + line.Connector + name)
			}
			if unreadable > 0 {
				p.warning("%d director%s could not be read", unreadable, textutil.Ternary(unreadable == 1, "y", "ies"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum depth to show (0 shows only the root)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden files")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Draw the tree with ASCII characters")
	return cmd
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "find <pattern> [path]",
		Short: "Find entries whose name contains a substring",
		Long: `Find files and directories below a folder whose name contains a
substring, ignoring case.

Symbolic links to directories can match by name but are not searched.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, _, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			root, err := resolve.Dir(pathArg(args, 1))
			if err != nil {
				return err
			}

			lister := listing.New(ctx.fs, listing.Options{IncludeHidden: true})
			searcher := search.New(lister, search.Options{Exclude: ctx.excludeMatcher()}, logger)

			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Display.Color)
			count, unreadable := 0, 0
			for match, err := range searcher.Search(root, args[0]) {
				if err != nil {
					unreadable++
					continue
				}
				count++
				p.line(match.Path)
			}
			p.total("Matches", count)
			if unreadable > 0 {
				p.warning("%d director%s could not be searched", unreadable, textutil.Ternary(unreadable == 1, "y", "ies"))
			}
			return nil
		},
	}
}
