package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evidencija/adapters/excel"
	"evidencija/app"
	"evidencija/domain/calendar"
	"evidencija/domain/report"
	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/templates"
)

// settingsFile is the YAML form of a user's settings. Numbers are read as
// text so "0,5" works as well as 0.5.
type settingsFile struct {
	FullName         string `yaml:"fullName"`
	OrganisationName string `yaml:"organisationName"`
	HomeAddress      string `yaml:"homeAddress"`
	WorkAddress      string `yaml:"workAddress"`
	DistanceToWork   string `yaml:"distanceToWork"`
	DistanceFromWork string `yaml:"distanceFromWork"`
	PricePerKm       string `yaml:"pricePerKm"`
	DefaultTransport string `yaml:"defaultTransport"`
}

func (s settingsFile) settings() *models.Settings {
	return &models.Settings{
		FullName:         s.FullName,
		OrganisationName: s.OrganisationName,
		HomeAddress:      s.HomeAddress,
		WorkAddress:      s.WorkAddress,
		DistanceToWork:   models.ParseDecimal(s.DistanceToWork),
		DistanceFromWork: models.ParseDecimal(s.DistanceFromWork),
		PricePerKm:       models.ParseDecimal(s.PricePerKm),
		DefaultTransport: s.DefaultTransport,
	}
}

type renderOptions struct {
	rowsPath     string
	settingsPath string
	month        string
	out          string
	templatesDir string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render honorari|prijevoz",
		Short: "Render a document without the web server",
		Long: `Render the overtime (honorari) or commuting (prijevoz) spreadsheet from files.

Rows come from a JSON file shaped like the download request body
({"rows":[...]}), or from a .csv/.xlsx sheet with a header row:
  honorari: subject, className, hours and one column per ISO date
  prijevoz: dateISO, included, transport

Example: evidencija-cli render prijevoz --rows feb.csv --settings me.yaml --out prijevoz.xlsx`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{templates.Honorari, templates.Prijevoz},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.rowsPath, "rows", "", "Rows file (.json, .csv or .xlsx)")
	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "Settings YAML file")
	cmd.Flags().StringVar(&opts.month, "month", "", "Report month as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output file (default: the document's file name)")
	cmd.Flags().StringVar(&opts.templatesDir, "templates", "", "Directory overriding the built-in templates")

	return cmd
}

func runRender(cmd *cobra.Command, document string, opts renderOptions) error {
	var fsys fs.FS = templates.FS
	if opts.templatesDir != "" {
		fsys = os.DirFS(opts.templatesDir)
	}
	store, err := excel.NewTemplateStore(fsys, templates.Honorari, templates.Prijevoz)
	if err != nil {
		return err
	}

	var settings *models.Settings
	if opts.settingsPath != "" {
		if settings, err = loadSettings(opts.settingsPath); err != nil {
			return err
		}
	}

	month := calendar.MonthStart(time.Now())
	if opts.month != "" {
		if month, err = calendar.ParseMonth(opts.month, time.Local); err != nil {
			return err
		}
	}

	var doc *app.Document
	switch document {
	case templates.Honorari:
		var rows []report.OvertimeRow
		if rows, err = loadOvertimeRows(opts.rowsPath); err != nil {
			return err
		}
		doc, _, err = app.RenderOvertime(store, app.OvertimeInput{Rows: rows, Month: month, Settings: settings})
	case templates.Prijevoz:
		if settings == nil {
			return errors.NotConfigured("Missing settings")
		}
		var rows []report.TravelRow
		if rows, err = loadTravelRows(opts.rowsPath, settings); err != nil {
			return err
		}
		doc, _, err = app.RenderTravel(store, app.TravelInput{Rows: rows, Settings: settings, Today: month})
	default:
		return fmt.Errorf("unknown document %q, want %s or %s", document, templates.Honorari, templates.Prijevoz)
	}
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	for _, w := range doc.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(doc.Body))
	return nil
}

func loadSettings(path string) (*models.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf settingsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return sf.settings(), nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func decodeJSONFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func loadOvertimeRows(path string) ([]report.OvertimeRow, error) {
	if path == "" {
		return nil, nil
	}
	if isJSON(path) {
		var req app.OvertimeRequest
		if err := decodeJSONFile(path, &req); err != nil {
			return nil, err
		}
		return req.Rows, nil
	}
	table, err := excel.ReadTable(path)
	if err != nil {
		return nil, err
	}
	return app.OvertimeRowsFromTable(table)
}

func loadTravelRows(path string, settings *models.Settings) ([]report.TravelRow, error) {
	if path == "" {
		return nil, nil
	}
	if isJSON(path) {
		var req app.TravelRequest
		if err := decodeJSONFile(path, &req); err != nil {
			return nil, err
		}
		return req.Rows, nil
	}
	table, err := excel.ReadTable(path)
	if err != nil {
		return nil, err
	}
	return app.TravelRowsFromTable(table, settings)
}
