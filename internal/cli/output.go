package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Message is a human-readable confirmation for commands without a data result
type Message struct {
	Text string `json:"message"`
	ID   int    `json:"id,omitempty"`
}

// GetID lets --quiet print the affected ID
func (m Message) GetID() int { return m.ID }

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(os.Stdout, data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "%s %s\n", styles.ErrorStyle.Render("Error:"), message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", styles.WarningStyle.Render("Suggestion:"), suggestion)
	}
	return nil
}

// Fail reports err and returns an *ExitCodeError carrying the matching exit code
func (f *OutputFormatter) Fail(err error) error {
	message := err.Error()
	if ae, ok := apperror.As(err); ok && ae.Kind == apperror.Internal && ae.Err != nil {
		message = ae.Err.Error()
	}
	_ = f.ErrorWithSuggestion(errorCode(err), message, suggestionFor(err))
	return &ExitCodeError{Code: ExitCodeFor(err), Err: err}
}

func suggestionFor(err error) string {
	switch apperror.KindOf(err) {
	case apperror.Unauthenticated:
		return "Pass the acting user with --user or set TALLY_USER"
	case apperror.Forbidden:
		return "Only the project owner can change it"
	}
	return ""
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(w io.Writer, data any) error {
	switch v := data.(type) {
	case *models.Project:
		_, err := fmt.Fprintln(w, renderProject(v))
		return err
	case *models.Task:
		_, err := fmt.Fprintln(w, renderTask(v))
		return err
	case models.Page[*models.Project]:
		lines := make([]string, 0, len(v.Items)+1)
		for _, p := range v.Items {
			lines = append(lines, fmt.Sprintf("%s %s", styles.SubtitleStyle.Render(fmt.Sprintf("#%d", p.ID)), styles.TitleStyle.Render(p.Title)))
		}
		lines = append(lines, pageFooter(v.Page, v.TotalPages, v.TotalItems, "projects"))
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	case models.Page[*models.Task]:
		lines := make([]string, 0, len(v.Items)+1)
		for _, t := range v.Items {
			line := fmt.Sprintf("%s %s %s", styles.Checkbox(t.Completed), styles.SubtitleStyle.Render(fmt.Sprintf("#%d", t.ID)), t.Title)
			if !t.Deadline.IsZero() {
				line += styles.SubtitleStyle.Render(" due " + t.Deadline.String())
			}
			lines = append(lines, line)
		}
		lines = append(lines, pageFooter(v.Page, v.TotalPages, v.TotalItems, "tasks"))
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	case models.Progress:
		_, err := fmt.Fprintln(w, renderProgress(v))
		return err
	case Message:
		_, err := fmt.Fprintln(w, styles.SuccessStyle.Render("✓")+" "+v.Text)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, v.String())
		return err
	default:
		_, err := fmt.Fprintf(w, "%+v\n", data)
		return err
	}
}

func renderProject(p *models.Project) string {
	body := []string{
		styles.TitleStyle.Render(p.Title),
		styles.Field("ID", fmt.Sprintf("%d", p.ID)),
		styles.Field("Owner", fmt.Sprintf("%d", p.UserID)),
	}
	if p.Description != "" {
		body = append(body, "", styles.Markdown(p.Description, styles.CardWidth-4))
	}
	return styles.CardStyle.Render(strings.Join(body, "\n"))
}

func renderTask(t *models.Task) string {
	body := []string{
		styles.Checkbox(t.Completed) + " " + styles.TitleStyle.Render(t.Title),
		styles.Field("ID", fmt.Sprintf("%d", t.ID)),
		styles.Field("Project", fmt.Sprintf("%d", t.ProjectID)),
	}
	if !t.Deadline.IsZero() {
		body = append(body, styles.Field("Deadline", t.Deadline.String()))
	}
	if t.Description != "" {
		body = append(body, "", styles.Markdown(t.Description, styles.CardWidth-4))
	}
	return styles.CardStyle.Render(strings.Join(body, "\n"))
}

func renderProgress(p models.Progress) string {
	progression := "n/a (no tasks)"
	if !p.PercentageProgression.IsUndefined() {
		progression = fmt.Sprintf("%.0f%%", float64(p.PercentageProgression)*100)
	}
	return styles.CardStyle.Render(strings.Join([]string{
		styles.TitleStyle.Render(fmt.Sprintf("Project #%d", p.ProjectID)),
		styles.Field("Tasks", fmt.Sprintf("%d", p.TotalTasks)),
		styles.Field("Completed", fmt.Sprintf("%d", p.CompletedTasks)),
		styles.Field("Progression", progression),
	}, "\n"))
}

func pageFooter(page, totalPages, totalItems int, noun string) string {
	if totalItems == 0 {
		return styles.SubtitleStyle.Render("no " + noun)
	}
	return styles.SubtitleStyle.Render(fmt.Sprintf("page %d of %d (%d %s)", page+1, totalPages, totalItems, noun))
}
