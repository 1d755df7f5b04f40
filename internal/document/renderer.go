// Package document fills the attendance sheet template for a single employee.
package document

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/username/attendance-sheets/internal/calendar"
	"github.com/username/attendance-sheets/internal/roster"
	"github.com/username/attendance-sheets/pkg/dateutil"
	"go.uber.org/zap"
)

// Template placeholders
const (
	PlaceholderTitle    = "<<TITLE>>"
	PlaceholderYear     = "<<YEAR>>"
	PlaceholderMonth    = "<<MONTH>>"
	PlaceholderTopRows  = "<<TOP_TABLE_ROWS>>"
	PlaceholderEmployee = "<<EMPLOYEE>>"
	PlaceholderDays     = "<<DAYS>>"
)

// ErrTemplateMissing is returned when the template cannot be read
var ErrTemplateMissing = errors.New("template missing")

//go:embed templates/template.tex
var defaultTemplate string

// DefaultTemplate returns the built-in LaTeX template
func DefaultTemplate() string {
	return defaultTemplate
}

// Metadata is computed once per run and shared by every employee's document
type Metadata struct {
	Year       int
	Month      time.Month
	MonthName  string // Polish, nominative
	TotalHours int    // Full-time hours, before the employment factor
	Days       string // Rendered day rows
}

// BuildMetadata computes the month metadata for the month containing date
func BuildMetadata(date time.Time, holidaysByDay map[int]calendar.Holiday) Metadata {
	year, month := date.Year(), date.Month()

	return Metadata{
		Year:       year,
		Month:      month,
		MonthName:  dateutil.PolishMonth(month),
		TotalHours: calendar.ComputeTotalHours(year, month, holidaysByDay),
		Days:       calendar.RenderDayRows(year, month, holidaysByDay),
	}
}

// HoursFor returns the expected hours for an employee with the given employment factor
func (m Metadata) HoursFor(e roster.Employee) float64 {
	return float64(m.TotalHours) * e.Time
}

// Renderer produces document sources from the template
type Renderer struct {
	templatePath string // Empty means the embedded template
	defaultTitle string
	logger       *zap.Logger
}

// NewRenderer creates a new Renderer. An empty templatePath selects the
// embedded template.
func NewRenderer(templatePath, defaultTitle string, logger *zap.Logger) *Renderer {
	return &Renderer{
		templatePath: templatePath,
		defaultTitle: defaultTitle,
		logger:       logger,
	}
}

// Render fills the template for one employee
func (r *Renderer) Render(employee roster.Employee, meta Metadata) (string, error) {
	tmpl, err := r.loadTemplate()
	if err != nil {
		return "", err
	}

	title := employee.Title
	if title == "" {
		title = r.defaultTitle
	}

	topRows := ""
	if !employee.HideHours {
		topRows = SummaryRow(meta.HoursFor(employee))
	}

	// Single pass: replacement values are never scanned for placeholders.
	replacer := strings.NewReplacer(
		PlaceholderTitle, title,
		PlaceholderYear, strconv.Itoa(meta.Year),
		PlaceholderMonth, meta.MonthName,
		PlaceholderTopRows, topRows,
		PlaceholderEmployee, employee.FullName(),
		PlaceholderDays, meta.Days,
	)

	r.logger.Debug("Rendering document",
		zap.String("employee", employee.FullName()),
		zap.Bool("hide_hours", employee.HideHours))

	return replacer.Replace(tmpl), nil
}

// SummaryRow formats the expected-hours row placed above the day table
func SummaryRow(hours float64) string {
	return fmt.Sprintf(`wymiar czasu pracy: & %.2f godzin \\`, hours)
}

func (r *Renderer) loadTemplate() (string, error) {
	if r.templatePath == "" {
		return defaultTemplate, nil
	}

	data, err := os.ReadFile(r.templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplateMissing, err)
	}
	return string(data), nil
}
