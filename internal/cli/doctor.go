// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Health checks for configuration, content and storage.
//
// Checks performed:
//  1. Config Valid     - config.toml parses and validates
//  2. Data Writable    - the data directory accepts writes
//  3. Profile Loads    - the profile parses and validates
//  4. Blog Readable    - every post's content file exists
//  5. History Store    - the configured backend opens
//  6. Terminal         - stdin/stdout are terminals (warning only)
//
// Exit code is 1 when any check fails.
package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/palash-droid/folio/internal/config"
	"github.com/palash-droid/folio/internal/content"
	"github.com/palash-droid/folio/internal/storage"
)

// =============================================================================
// DOCTOR STYLES
// =============================================================================

var (
	checkPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus is the outcome of one health check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
	CheckFail
)

func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol is the styled status marker.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return checkPassStyle.Render("[OK]")
	case CheckWarn:
		return checkWarnStyle.Render("[!!]")
	case CheckFail:
		return checkFailStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck is a single check result.
type HealthCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"-"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"` // Suggested remedy
}

// Render formats the check with its fix hint when it did not pass.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), ValueStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + fixStyle.Render("-> "+c.Fix)
	}
	return result
}

func pass(name, msg string) *HealthCheck {
	return &HealthCheck{Name: name, Status: CheckPass, Message: msg}
}

func warn(name, msg, fix string) *HealthCheck {
	return &HealthCheck{Name: name, Status: CheckWarn, Message: msg, Fix: fix}
}

func fail(name, msg, fix string) *HealthCheck {
	return &HealthCheck{Name: name, Status: CheckFail, Message: msg, Fix: fix}
}

// DoctorSummary counts check outcomes.
type DoctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

type doctorCheck struct {
	*HealthCheck
	Status string `json:"status"`
}

// DoctorData is the JSON form of a doctor run.
type DoctorData struct {
	Checks  []doctorCheck `json:"checks"`
	Summary DoctorSummary `json:"summary"`
}

// =============================================================================
// COMMAND
// =============================================================================

func newDoctorCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"diag"},
		Short:   "Check configuration, content and storage",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks := RunChecks(cmd.Context(), s.cfg, s.configPath)
			return reportChecks(cmd.OutOrStdout(), checks, s.jsonOut)
		},
	}
}

func summarize(checks []*HealthCheck) DoctorSummary {
	var sum DoctorSummary
	for _, c := range checks {
		switch c.Status {
		case CheckPass:
			sum.Passed++
		case CheckWarn:
			sum.Warned++
		case CheckFail:
			sum.Failed++
		}
	}
	sum.Healthy = sum.Failed == 0
	return sum
}

func reportChecks(w io.Writer, checks []*HealthCheck, jsonOut bool) error {
	sum := summarize(checks)
	var failure error
	if sum.Failed > 0 {
		failure = fmt.Errorf("%d health check(s) failed", sum.Failed)
	}

	if jsonOut {
		data := DoctorData{Summary: sum}
		for _, c := range checks {
			data.Checks = append(data.Checks, doctorCheck{HealthCheck: c, Status: c.Status.String()})
		}
		resp := NewJSONResponse("doctor", data)
		if failure != nil {
			msg := failure.Error()
			resp.Success = false
			resp.Error = &msg
		}
		if err := resp.Write(w); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(w, TitleStyle.Render("folio doctor"))
	fmt.Fprintln(w, RenderSeparator(41))
	for _, c := range checks {
		fmt.Fprintln(w, c.Render())
	}
	fmt.Fprintln(w, SeparatorStyle.Render(strings.Repeat("-", 41)))

	parts := []string{fmt.Sprintf("%d passed", sum.Passed)}
	if sum.Warned > 0 {
		parts = append(parts, checkWarnStyle.Render(fmt.Sprintf("%d warning", sum.Warned)))
	}
	if sum.Failed > 0 {
		parts = append(parts, checkFailStyle.Render(fmt.Sprintf("%d failed", sum.Failed)))
	}
	fmt.Fprintln(w, DimStyle.Render(strings.Join(parts, ", ")))
	return failure
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

// RunChecks runs every check against cfg. configPath is the --config flag
// value, empty for the default location.
func RunChecks(ctx context.Context, cfg *config.Config, configPath string) []*HealthCheck {
	prof, profCheck := checkProfile(cfg)
	return []*HealthCheck{
		checkConfig(cfg, configPath),
		checkDataWritable(cfg),
		profCheck,
		checkBlogs(cfg, prof),
		checkHistoryStore(ctx, cfg),
		checkTerminal(),
	}
}

func checkConfig(cfg *config.Config, configPath string) *HealthCheck {
	const name = "Config Valid"
	path := configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return warn(name, "Could not determine config path", "Set FOLIO_HOME")
		}
		path = p
	}
	if err := cfg.Validate(); err != nil {
		return fail(name, fmt.Sprintf("Config invalid: %s", err), "Run: folio config set <key> <value>")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return pass(name, "Config valid (using defaults)")
	}
	return pass(name, "Config valid: "+path)
}

func checkDataWritable(cfg *config.Config) *HealthCheck {
	const name = "Data Writable"
	dir := cfg.Terminal.DataDir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fail(name, fmt.Sprintf("Could not create data directory: %s", err),
			fmt.Sprintf("Create manually: mkdir -p %s", dir))
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		return fail(name, fmt.Sprintf("Data directory not writable: %s", err),
			fmt.Sprintf("Check permissions: chmod 700 %s", dir))
	}
	_ = os.Remove(testFile)
	return pass(name, "Data directory writable: "+dir)
}

func checkProfile(cfg *config.Config) (*content.Profile, *HealthCheck) {
	const name = "Profile Loads"
	prof, err := loadProfile(cfg.Content.ProfilePath)
	if err != nil {
		return nil, fail(name, err.Error(), "Fix the YAML at content.profile_path or unset it")
	}
	src := "embedded"
	if cfg.Content.ProfilePath != "" {
		src = cfg.Content.ProfilePath
	}
	return prof, pass(name, fmt.Sprintf("Profile loaded (%s): %d projects, %d posts",
		src, len(prof.Projects), len(prof.BlogPosts)))
}

func checkBlogs(cfg *config.Config, prof *content.Profile) *HealthCheck {
	const name = "Blog Readable"
	if prof == nil {
		return warn(name, "Skipped: no profile", "")
	}
	src := content.EmbeddedBlogFS()
	if cfg.Content.BlogDir != "" {
		src = os.DirFS(cfg.Content.BlogDir)
	}
	var missing []string
	for _, p := range prof.BlogPosts {
		if _, err := fs.Stat(src, p.ContentFile); err != nil {
			missing = append(missing, p.ContentFile)
		}
	}
	if len(missing) > 0 {
		return fail(name, "Missing post content: "+strings.Join(missing, ", "),
			"Add the files to content.blog_dir")
	}
	return pass(name, fmt.Sprintf("All %d posts readable", len(prof.BlogPosts)))
}

func checkHistoryStore(ctx context.Context, cfg *config.Config) *HealthCheck {
	const name = "History Store"
	switch cfg.Terminal.HistoryBackend {
	case "memory":
		return warn(name, "History is kept in memory only", "Run: folio config set terminal.history_backend file")
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath()), 0o700); err != nil {
			return fail(name, err.Error(), "")
		}
		db, err := storage.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			return fail(name, fmt.Sprintf("Could not open database: %s", err),
				"Run: folio config set terminal.history_backend file")
		}
		defer db.Close()
		scopes, err := db.Scopes(ctx)
		if err != nil {
			return fail(name, fmt.Sprintf("Could not query database: %s", err), "")
		}
		return pass(name, fmt.Sprintf("SQLite history: %d scope(s) in %s", len(scopes), cfg.DatabasePath()))
	default:
		if _, err := storage.NewFileKV(filepath.Join(cfg.HistoryDir(), LocalScope)); err != nil {
			return fail(name, fmt.Sprintf("Could not open history dir: %s", err), "")
		}
		return pass(name, "File history: "+cfg.HistoryDir())
	}
}

func checkTerminal() *HealthCheck {
	const name = "Terminal"
	if DetectHost(IsTTY(), IsStdoutTTY()) != HostTUI {
		return warn(name, "Not a terminal: folio will read commands from stdin", "Run folio from an interactive terminal for the full UI")
	}
	return pass(name, fmt.Sprintf("Interactive terminal, %d columns", GetTerminalWidth()))
}
