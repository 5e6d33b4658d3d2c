package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ifcdash/ifc"
	"ifcdash/models"
	"ifcdash/repository"
	"ifcdash/services"
)

type options struct {
	format string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "ifctool",
		Short: "Inspect, compare and export IFC building models",
		Long: `ifctool runs the analysis pipeline of the dashboard server on local files.

Output Format:
  Commands print YAML by default. Use --format json for JSON.

Examples:
  ifctool types model.ifc
  ifctool counts model.ifc --product-type IfcWall
  ifctool extract model.ifc --class IfcBeam --out beams.csv
  ifctool compare a.ifc b.ifc
  ifctool report model.ifc --out report.pdf --author "Site office"
  ifctool describe elements.xlsx --columns Volume,Mass`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.format, "format", "yaml", "Output format (yaml|json)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(opts.format) {
		case "yaml", "yml", "json":
			return nil
		}
		return fmt.Errorf("invalid format: %q (expected yaml or json)", opts.format)
	}

	root.AddCommand(
		newTypesCmd(opts),
		newCountsCmd(opts),
		newExtractCmd(opts),
		newCompareCmd(opts),
		newReportCmd(opts),
		newDescribeCmd(opts),
	)
	return root
}

func openModel(ctx context.Context, path string) (*ifc.Model, error) {
	if !strings.EqualFold(filepath.Ext(path), ".ifc") {
		return nil, fmt.Errorf("%s: expected an .ifc file", path)
	}
	model, err := ifc.OpenContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return model, nil
}

type typesResult struct {
	File   string   `json:"file" yaml:"file"`
	Schema string   `json:"schema" yaml:"schema"`
	Types  []string `json:"types" yaml:"types"`
}

func newTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types <file.ifc>",
		Short: "List the entity types present in a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.format, typesResult{
				File:   filepath.Base(args[0]),
				Schema: model.Schema(),
				Types:  model.AllEntityTypeNames(),
			})
		},
	}
}

type countsResult struct {
	File     string                 `json:"file" yaml:"file"`
	Schema   string                 `json:"schema" yaml:"schema"`
	Metadata models.ProjectMetadata `json:"metadata" yaml:"metadata"`
	Counts   []models.CategoryCount `json:"component_counts" yaml:"component_counts"`
	Detailed *models.DetailedCounts `json:"detailed,omitempty" yaml:"detailed,omitempty"`
}

func newCountsCmd(opts *options) *cobra.Command {
	var productType, sortBy string
	cmd := &cobra.Command{
		Use:   "counts <file.ifc>",
		Short: "Show project metadata and building component counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res := countsResult{
				File:     filepath.Base(args[0]),
				Schema:   model.Schema(),
				Metadata: repository.ProjectMetadata(model),
				Counts:   repository.SortCounts(repository.CountBuildingComponents(model), "count"),
			}
			if productType != "" {
				res.Detailed = &models.DetailedCounts{
					ProductType: ifc.CanonicalName(productType),
					Counts:      repository.SortCounts(repository.CountByNamePrefix(model, productType), sortBy),
				}
			}
			return writeResult(cmd.OutOrStdout(), opts.format, res)
		},
	}
	cmd.Flags().StringVar(&productType, "product-type", "", "Break one product type down by name, e.g. IfcWall")
	cmd.Flags().StringVar(&sortBy, "sort-by", "Count", "Detailed sort order (Count|Type)")
	return cmd
}

type extractResult struct {
	File     string              `json:"file" yaml:"file"`
	Class    string              `json:"class" yaml:"class"`
	Records  int                 `json:"records" yaml:"records"`
	Output   string              `json:"output,omitempty" yaml:"output,omitempty"`
	Table    *models.Table       `json:"table,omitempty" yaml:"table,omitempty"`
	Groups   *models.GroupResult `json:"groups,omitempty" yaml:"groups,omitempty"`
	Messages []string            `json:"messages,omitempty" yaml:"messages,omitempty"`
}

func newExtractCmd(opts *options) *cobra.Command {
	var class, out, sumColumn string
	var groupBy []string
	cmd := &cobra.Command{
		Use:   "extract <file.ifc>",
		Short: "Flatten the property and quantity sets of one entity class",
		Long: `extract builds one row per entity of --class with the scalar columns
ExpressId, GlobalId, Class, PredefinedType, Name, Level and Type followed by
one "Set.Property" column per property or quantity seen on any entity.

With --out the table is written to a .csv or .xlsx file instead of printed.
IfcBeam also reports NetVolume totals by Level, Type and PredefinedType.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sumColumn != "" && len(groupBy) == 0 {
				return fmt.Errorf("--sum requires --group-by")
			}
			model, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			class = ifc.CanonicalName(class)
			records, paths, err := repository.ExtractObjectDataContext(cmd.Context(), model, class)
			if err != nil {
				return err
			}
			table := services.FlattenObjects(records, services.ObjectColumns(paths))
			res := extractResult{File: filepath.Base(args[0]), Class: class, Records: len(records)}

			switch {
			case len(groupBy) > 0:
				res.Groups, err = services.GroupTable(table, groupBy, sumColumn)
			case class == services.BeamClass:
				var rows []models.GroupRow
				if rows, err = services.BeamVolumeTotals(table); err == nil {
					res.Groups = &models.GroupResult{GroupBy: services.BeamGroupKeys, SumColumn: services.BeamVolumeColumn, Rows: rows}
				}
			}
			if err != nil {
				res.Messages = append(res.Messages, err.Error())
			}

			if out == "" {
				res.Table = &table
			} else {
				if err := writeTable(out, table, class); err != nil {
					return err
				}
				res.Output = out
			}
			return writeResult(cmd.OutOrStdout(), opts.format, res)
		},
	}
	cmd.Flags().StringVar(&class, "class", "IfcBuildingElement", "Entity class to extract")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the table to a .csv or .xlsx file")
	cmd.Flags().StringSliceVar(&groupBy, "group-by", nil, "Columns to group by")
	cmd.Flags().StringVar(&sumColumn, "sum", "", "Column summed per group")
	return cmd
}

func writeTable(path string, table models.Table, sheet string) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = services.WriteCSV(&buf, table)
	case ".xlsx":
		err = services.WriteXLSX(&buf, table, sheet)
	default:
		return fmt.Errorf("%s: output must end in .csv or .xlsx", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

type compareResult struct {
	File1 string                 `json:"file_1" yaml:"file_1"`
	File2 string                 `json:"file_2" yaml:"file_2"`
	Rows  []models.ComparisonRow `json:"rows" yaml:"rows"`
}

func newCompareCmd(opts *options) *cobra.Command {
	var component string
	cmd := &cobra.Command{
		Use:   "compare <a.ifc> <b.ifc>",
		Short: "Compare the component counts of two models",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := openModel(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			rows := services.CompareCounts(repository.CountBuildingComponents(a), repository.CountBuildingComponents(b))
			if component != "" {
				row, ok := services.FindComparison(rows, ifc.CanonicalName(component))
				if !ok {
					return fmt.Errorf("component %s is in neither file", component)
				}
				rows = []models.ComparisonRow{row}
			}
			return writeResult(cmd.OutOrStdout(), opts.format, compareResult{
				File1: filepath.Base(args[0]),
				File2: filepath.Base(args[1]),
				Rows:  rows,
			})
		},
	}
	cmd.Flags().StringVar(&component, "component", "", "Only show this component type")
	return cmd
}

type reportResult struct {
	Output   string   `json:"output" yaml:"output"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newReportCmd(opts *options) *cobra.Command {
	var out, chartType, productType string
	var ropts services.ReportOptions
	cmd := &cobra.Command{
		Use:   "report <file.ifc>",
		Short: "Write a PDF analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := services.ParseChartKind(chartType)
			if err != nil {
				return err
			}
			model, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
			}

			counts := repository.SortCounts(repository.CountBuildingComponents(model), "count")
			report := services.Report{
				Metadata:        repository.ProjectMetadata(model),
				ComponentCounts: counts,
				Charts:          []services.Chart{services.ComponentChart(counts, kind)},
			}
			if productType != "" {
				detailed := repository.SortCounts(repository.CountByNamePrefix(model, productType), "count")
				report.Charts = append(report.Charts, services.DetailedChart(ifc.CanonicalName(productType), detailed))
			}

			var buf bytes.Buffer
			warnings, err := services.BuildReport(&buf, report, ropts)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			return writeResult(cmd.OutOrStdout(), opts.format, reportResult{Output: out, Warnings: warnings})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "PDF path (default: the model name with .pdf)")
	cmd.Flags().StringVar(&chartType, "chart", "bar", "Component chart type (bar|pie)")
	cmd.Flags().StringVar(&productType, "product-type", "", "Add a detailed chart of one product type")
	cmd.Flags().StringVar(&ropts.Author, "author", "Author Name", "Cover page author")
	cmd.Flags().StringVar(&ropts.Subject, "subject", services.DefaultReportSubject, "Cover page title")
	cmd.Flags().StringVar(&ropts.CoverText, "cover-text", services.DefaultReportCoverText, "Cover page text, may contain HTML")
	return cmd
}

type describeResult struct {
	File  string               `json:"file" yaml:"file"`
	Sheet string               `json:"sheet" yaml:"sheet"`
	Rows  int                  `json:"rows" yaml:"rows"`
	Stats []models.ColumnStats `json:"stats" yaml:"stats"`
}

func newDescribeCmd(opts *options) *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "describe <file.xlsx>",
		Short: "Descriptive statistics of the numeric columns of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := repository.ReadSheet(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			return writeResult(cmd.OutOrStdout(), opts.format, describeResult{
				File:  filepath.Base(args[0]),
				Sheet: sheet.Name,
				Rows:  len(sheet.Rows),
				Stats: services.DescribeColumns(sheet, columns),
			})
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to describe (default: all)")
	return cmd
}
