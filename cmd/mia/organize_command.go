package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mia/internal/classify"
	"mia/internal/config"
	"mia/internal/logging"
	"mia/internal/organizer"
	"mia/internal/resolve"
	"mia/internal/runlock"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var other string
	var verbose bool
	var onConflict string
	var categoriesFile string
	var summary bool

	cmd := &cobra.Command{
		Use:   "organize [path]",
		Short: "Sort files into category folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, runCtx, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			root, err := resolve.Dir(pathArg(args, 0))
			if err != nil {
				return err
			}

			bucket := cfg.Organize.OtherBucket
			if cmd.Flags().Changed("other") {
				bucket = strings.TrimSpace(other)
			}
			policyName := cfg.Organize.OnConflict
			if cmd.Flags().Changed("on-conflict") {
				policyName = onConflict
			}
			policy, err := organizer.ParseConflictPolicy(policyName)
			if err != nil {
				return err
			}
			file := cfg.Organize.CategoriesFile
			if cmd.Flags().Changed("categories") {
				file = ""
				if strings.TrimSpace(categoriesFile) != "" {
					if file, err = resolve.Expand(categoriesFile); err != nil {
						return err
					}
				}
			}
			table, err := buildCategoryTable(cfg, file)
			if err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			lock, err := runlock.Acquire(cfg.LockDir(), root)
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logging.ErrorWithContext(logger, "organize lock not released", "lock_release_failed",
						logging.Error(err),
						logging.String("lock", lock.Path()),
						logging.String(logging.FieldErrorHint, "remove the lock file if no organize run is active"),
					)
				}
			}()

			org := organizer.New(ctx.fs, classify.New(table), logger)
			result, organizeErr := org.Organize(runCtx, root, organizer.Options{
				OtherBucket: bucket,
				Verbose:     verbose || summary,
				OnConflict:  policy,
			})
			if organizeErr != nil && result.Moved == 0 && len(result.Failures) == 0 {
				return organizeErr
			}

			// A cancelled run still reports the files it already moved.
			p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Display.Color)
			if verbose {
				for _, move := range result.Moves {
					p.linef("%s -> %s/", move.Name, move.Category)
				}
			}
			for _, failure := range result.Failures {
				p.warning("%s: %v", failure.Name, failure.Err)
			}
			if summary && len(result.Moves) > 0 {
				p.line(renderOrganizeSummary(result.Moves))
			}
			p.total("Moved files", result.Moved)
			if verbose && result.Skipped > 0 {
				p.total("Skipped files", result.Skipped)
			}
			return organizeErr
		},
	}

	cmd.Flags().StringVar(&other, "other", "", "Folder name for uncategorized files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every move")
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", "When the destination exists: skip, overwrite, or rename")
	cmd.Flags().StringVar(&categoriesFile, "categories", "", "TOML or YAML file with category overrides")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a per-category table of moved files")
	return cmd
}

// buildCategoryTable layers the categories file and inline config categories
// over the built-in table.
func buildCategoryTable(cfg *config.Config, file string) (*classify.Table, error) {
	var overrides []classify.Category
	if file != "" {
		loaded, err := classify.LoadFile(file)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, loaded...)
	}
	for _, cat := range cfg.Organize.Categories {
		overrides = append(overrides, classify.Category{Name: cat.Name, Extensions: cat.Extensions})
	}
	if len(overrides) == 0 {
		return classify.DefaultTable(), nil
	}
	table, err := classify.DefaultTable().Merge(overrides, cfg.Organize.ReplaceCategories)
	if err != nil {
		return nil, fmt.Errorf("category table: %w", err)
	}
	return table, nil
}

func renderOrganizeSummary(moves []organizer.Move) string {
	counts := map[string]int{}
	var order []string
	for _, move := range moves {
		if _, seen := counts[move.Category]; !seen {
			order = append(order, move.Category)
		}
		counts[move.Category]++
	}
	slices.Sort(order)
	rows := make([][]string, 0, len(order))
	for _, category := range order {
		rows = append(rows, []string{category + "/", strconv.Itoa(counts[category])})
	}
	return renderTable([]string{"Category", "Files"}, rows, []columnAlignment{alignLeft, alignRight})
}
