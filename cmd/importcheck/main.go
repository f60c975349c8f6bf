// Command importcheck validates a spreadsheet export of organizational
// initiatives and prints the full validation report as JSON.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/stratix-platform/importcheck/infrastructure/telemetry"
	"github.com/stratix-platform/importcheck/internal/application"
	"github.com/stratix-platform/importcheck/internal/domain"
)

// contextFile is the on-disk shape of the import context: who is importing,
// the tenant's reference data, and the column mapping.
type contextFile struct {
	Role        string                  `yaml:"role"`
	TenantID    string                  `yaml:"tenant_id"`
	AreaID      string                  `yaml:"area_id"`
	AreaName    string                  `yaml:"area_name"`
	Areas       []string                `yaml:"areas"`
	Initiatives []initiativeEntry       `yaml:"initiatives"`
	Mapping     map[string]string       `yaml:"mapping"`
	Rules       *domain.ValidationRules `yaml:"rules"`
}

type initiativeEntry struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Area  string `yaml:"area"`
}

type options struct {
	contextPath string
	lexiconPath string
	outputPath  string
	sheet       string
	workers     int
	pretty      bool
	metrics     bool
	debug       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "importcheck <file.csv|file.xlsx>",
		Short: "Validate a spreadsheet of initiatives before import",
		Long: `importcheck runs the full import validation pipeline over a CSV or XLSX
export: per-row field checks, cross-field checks, batch-level duplicate and
budget analysis, and auto-correction suggestions. The report is written as
JSON.

The context file supplies the acting user's role, the tenant's existing
areas and initiatives, and the column mapping:

    role: manager
    tenant_id: acme
    areas: [Sales, Marketing, Engineering]
    initiatives:
      - {id: "1", title: "Q3 pipeline review", area: Sales}
    mapping:
      "Área": area
      "Iniciativa": initiative
      "Progreso": progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&opts.contextPath, "context", "c", "", "path to the import context YAML file (required)")
	cmd.Flags().StringVar(&opts.lexiconPath, "lexicon", "", "path to a replacement status/priority lexicon YAML file")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "-", "report destination (\"-\" for stdout)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet name for XLSX input (defaults to the first sheet)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent row validators (defaults to the CPU count)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON report")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "register Prometheus metrics for the run")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("context")

	return cmd
}

func run(ctx context.Context, inputPath string, opts *options) error {
	logger, err := newLogger(opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	vctx, err := loadContext(opts.contextPath, opts.lexiconPath)
	if err != nil {
		return err
	}

	rows, err := readRows(inputPath, opts.sheet)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	logger.Debug("input loaded", zap.String("path", inputPath), zap.Int("rows", len(rows)))

	engineOpts := []application.Option{
		application.WithLogger(logger),
		application.WithWorkers(opts.workers),
	}
	if opts.metrics {
		engineOpts = append(engineOpts, application.WithMetrics(telemetry.NewPrometheusMetrics()))
	}

	report, err := application.NewEngine(engineOpts...).Evaluate(ctx, rows, nil, vctx)
	if err != nil {
		return fmt.Errorf("validation run failed: %w", err)
	}

	if err := writeReport(report, opts.outputPath, opts.pretty); err != nil {
		return err
	}

	if report.Summary.InvalidRows > 0 {
		return fmt.Errorf("%d of %d rows are invalid", report.Summary.InvalidRows, report.Summary.TotalRows)
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	// The report owns stdout; logs go to stderr.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadContext reads the context file and assembles the validation context,
// applying role defaults for any rule section the file omits.
func loadContext(contextPath, lexiconPath string) (*domain.ValidationContext, error) {
	data, err := os.ReadFile(contextPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var file contextFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode context file (check for typos): %w", err)
	}

	role := domain.Role(file.Role)
	rules := domain.RulesForRole(role)
	if file.Rules != nil {
		rules = *file.Rules
		if len(rules.Lexicon.Statuses) == 0 {
			rules.Lexicon = domain.DefaultLexicon()
		}
	}

	if lexiconPath != "" {
		lexData, err := os.ReadFile(lexiconPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read lexicon file: %w", err)
		}
		lex, err := domain.LexiconFromYAML(lexData)
		if err != nil {
			return nil, err
		}
		rules.Lexicon = lex
	}

	initiatives := make([]domain.InitiativeRef, 0, len(file.Initiatives))
	for _, entry := range file.Initiatives {
		initiatives = append(initiatives, domain.InitiativeRef{
			ID:    entry.ID,
			Title: entry.Title,
			Area:  entry.Area,
		})
	}

	vctx := domain.NewValidationContext(
		role,
		file.TenantID,
		domain.ColumnMapping(file.Mapping),
		file.Areas,
		initiatives,
		rules,
	)
	vctx.AreaID = file.AreaID
	vctx.AreaName = file.AreaName

	return vctx, nil
}

// readRows loads the spreadsheet into raw rows keyed by header name.
// The first row is the header row.
func readRows(path, sheet string) ([]domain.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm":
		return readXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
}

func readCSV(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	return rowsFromRecords(records), nil
}

func readXLSX(path, sheet string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	return rowsFromRecords(records), nil
}

// rowsFromRecords turns header-plus-data records into raw rows. Cells beyond
// the header width are dropped; short rows simply omit the trailing columns.
func rowsFromRecords(records [][]string) []domain.RawRow {
	headers := records[0]

	rows := make([]domain.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(domain.RawRow, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func writeReport(report *domain.Report, path string, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" || path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0600)
}
