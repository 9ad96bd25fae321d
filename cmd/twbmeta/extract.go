package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/output"
)

var (
	outputPath string
	format     string
	pretty     bool
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [input.twb]",
		Short: "Write the metadata report for a workbook",
		Long: `Extract datasources, worksheets, dashboards, calculated fields and parameters
from a workbook and write them as an xlsx report (one sheet per non-empty collection),
JSON or YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>_metadata.xlsx for xlsx, stdout otherwise)")
	cmd.Flags().StringVar(&format, "format", "xlsx", "Output format: xlsx, json, yaml")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	switch format {
	case "xlsx", "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %s (must be xlsx, json, or yaml)", format)
	}

	md, err := twbmeta.Extract(inputPath, extractOptions())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	logExtracted(md)

	if format == "xlsx" {
		dest := outputPath
		if dest == "" {
			dest = defaultReportPath(inputPath)
		}
		if err := output.WriteReport(md, dest); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.WithField("output", dest).Info("Report written")
		return nil
	}

	var data []byte
	if format == "json" {
		data, err = output.ToJSON(md, pretty)
	} else {
		data, err = output.ToYAML(md)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	return nil
}

// defaultReportPath names the report after the input, in the working directory.
func defaultReportPath(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_metadata.xlsx"
}

func logExtracted(md *models.Metadata) {
	logger.WithFields(log.Fields{
		"book":              md.BookName,
		"datasources":       len(md.Datasources),
		"worksheets":        len(md.Worksheets),
		"dashboards":        len(md.Dashboards),
		"calculated_fields": len(md.CalculatedFields),
		"parameters":        len(md.Parameters),
	}).Debug("Extracted metadata")
}
