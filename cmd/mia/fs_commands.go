package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mia/internal/fsops"
	"mia/internal/listing"
	"mia/internal/resolve"
)

func newPwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "pwd",
		Short:       "Print working directory",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := fsops.WorkingDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), wd)
			return nil
		},
	}
}

func newLsCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var long bool

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List files and folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := resolve.Dir(pathArg(args, 0))
			if err != nil {
				return err
			}

			lister := listing.New(ctx.fs, listing.Options{IncludeHidden: all || cfg.Display.ShowHidden})
			entries, err := lister.List(root)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Display.Color)
			if long {
				p.line(renderLongListing(entries))
				return nil
			}
			for _, entry := range entries {
				if entry.Kind == listing.KindDir {
					p.line(p.dirName(entry.DisplayName()))
					continue
				}
				p.line(entry.DisplayName())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden files")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show kind, size, and modification time")
	return cmd
}

func renderLongListing(entries []listing.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		size := "-"
		if entry.Kind == listing.KindFile {
			size = humanize.Bytes(uint64(max(entry.Size, 0)))
		}
		kind := entry.Kind.String()
		if entry.Symlink {
			kind += " (link)"
		}
		rows = append(rows, []string{
			entry.DisplayName(),
			kind,
			size,
			entry.ModTime.Format("2006-01-02 15:04"),
		})
	}
	return renderTable(
		[]string{"Name", "Kind", "Size", "Modified"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func newMkcdCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mkcd <path>",
		Short: "Create a folder and print the cd command to enter it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			target, err := resolve.Target(args[0])
			if err != nil {
				return err
			}
			if err := fsops.New(ctx.fs, logger).MakeDir(target); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created: %s\n", target)
			fmt.Fprintf(out, "To enter it, run: cd %q\n", target)
			return nil
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rename <src> <dst>",
		Short: "Rename or move a file or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			src, err := resolveEntry(args[0])
			if err != nil {
				return err
			}
			dst, err := resolveEntry(strings.TrimSpace(args[1]))
			if err != nil {
				return err
			}
			if err := fsops.New(ctx.fs, logger).Rename(src, dst, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed/Moved: %s -> %s\n", src, dst)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace the destination if it exists")
	return cmd
}
