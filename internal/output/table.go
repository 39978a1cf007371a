// Package output provides terminal output utilities for venvman.
//
// This package includes:
//   - Table rendering for environments, analytics summaries and package lists
//   - Progress bars and spinners for long-running installer operations
//   - Human-readable formatting for sizes and timestamps
//
// All table rendering functions use ASCII characters and ANSI color codes for
// terminal output. Progress indicators are thread-safe.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/venvman/internal/analyzer"
	"github.com/blackwell-systems/venvman/internal/store"
	"github.com/blackwell-systems/venvman/internal/uv"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderEnvironmentTable renders a table of environment records sorted by
// name. The active environment, if any, is marked with an asterisk.
func RenderEnvironmentTable(envs []*store.Environment, current string, now time.Time) string {
	if len(envs) == 0 {
		return "No environments found.\n"
	}

	sorted := make([]*store.Environment, len(envs))
	copy(sorted, envs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-22s %-9s %-9s %-6s %-13s %s\n",
		"Environment", "Python", "Size", "Uses", "Last Used", "Tags"))
	sb.WriteString(strings.Repeat("─", 76))
	sb.WriteString("\n")

	for _, env := range sorted {
		name := env.Name
		if env.Name == current {
			name = "* " + name
		}

		sb.WriteString(fmt.Sprintf("%-22s %-9s %-9s %-6d %-13s %s\n",
			truncate(name, 22),
			env.PythonVersion,
			formatSize(env.SizeBytes),
			env.UsageCount,
			formatLastUsed(env.LastUsedAt, now),
			strings.Join(env.Tags, ", ")))
	}

	return sb.String()
}

// RenderSummary renders the aggregate analytics view: counts, total disk
// footprint, efficiency and the most-used ranking.
func RenderSummary(s *analyzer.Summary, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Environments: %d total · %s · %s\n",
		s.Total,
		colorize(colorGreen, fmt.Sprintf("%d active", s.ActiveCount)),
		colorize(colorYellow, fmt.Sprintf("%d unused", s.UnusedCount))))
	sb.WriteString(fmt.Sprintf("Disk usage:   %s\n", formatSize(s.TotalSizeBytes)))
	sb.WriteString(fmt.Sprintf("Efficiency:   %.0f%% of environments active\n", s.Efficiency()))

	if len(s.MostUsed) == 0 {
		return sb.String()
	}

	sb.WriteString("\nMost used:\n")
	sb.WriteString(fmt.Sprintf("%-22s %-6s %-13s %s\n",
		"Environment", "Uses", "Last Used", "Size"))
	sb.WriteString(strings.Repeat("─", 56))
	sb.WriteString("\n")

	for _, env := range s.MostUsed {
		sb.WriteString(fmt.Sprintf("%-22s %-6d %-13s %s\n",
			truncate(env.Name, 22),
			env.UsageCount,
			formatLastUsed(env.LastUsedAt, now),
			formatSize(env.SizeBytes)))
	}

	return sb.String()
}

// RenderEnvironmentDetail renders the per-environment analytics view.
func RenderEnvironmentDetail(d *analyzer.EnvironmentAnalytics, lockfilePath string, now time.Time) string {
	env := d.Environment
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Environment: %s\n", env.Name))
	if env.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", env.Description))
	}
	sb.WriteString(fmt.Sprintf("Python:      %s\n", env.PythonVersion))
	sb.WriteString(fmt.Sprintf("Created:     %s\n", formatRelativeTime(env.CreatedAt, now)))
	sb.WriteString(fmt.Sprintf("Size:        %s\n", formatSize(env.SizeBytes)))
	sb.WriteString(fmt.Sprintf("Packages:    %d\n", env.PackageCount))
	sb.WriteString(fmt.Sprintf("Activations: %d\n", env.UsageCount))
	sb.WriteString(fmt.Sprintf("Last used:   %s\n", formatLastUsed(env.LastUsedAt, now)))
	if len(env.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags:        %s\n", strings.Join(env.Tags, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Lockfile:    %s\n", lockfilePath))

	if d.Unused {
		sb.WriteString(colorize(colorYellow, "Status:      unused") + "\n")
	} else {
		sb.WriteString(colorize(colorGreen, "Status:      active") + "\n")
	}

	return sb.String()
}

// RenderPackageTable renders the installed-package closure of an environment.
func RenderPackageTable(pkgs []uv.Package) string {
	if len(pkgs) == 0 {
		return "No packages installed.\n"
	}

	sorted := make([]uv.Package, len(pkgs))
	copy(sorted, pkgs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-30s %s\n", "Package", "Version"))
	sb.WriteString(strings.Repeat("─", 44))
	sb.WriteString("\n")
	for _, pkg := range sorted {
		sb.WriteString(fmt.Sprintf("%-30s %s\n", truncate(pkg.Name, 30), pkg.Version))
	}
	return sb.String()
}

// RenderUnusedTable renders the environments classified as unused, sorted by
// size descending so the biggest wins show first.
func RenderUnusedTable(envs []*store.Environment, now time.Time) string {
	if len(envs) == 0 {
		return "No unused environments.\n"
	}

	sorted := make([]*store.Environment, len(envs))
	copy(sorted, envs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SizeBytes != sorted[j].SizeBytes {
			return sorted[i].SizeBytes > sorted[j].SizeBytes
		}
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder
	var total int64

	sb.WriteString(fmt.Sprintf("%-22s %-9s %-13s %s\n",
		"Environment", "Size", "Last Used", "Created"))
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")

	for _, env := range sorted {
		total += env.SizeBytes
		sb.WriteString(fmt.Sprintf("%-22s %-9s %-13s %s\n",
			truncate(env.Name, 22),
			formatSize(env.SizeBytes),
			formatLastUsed(env.LastUsedAt, now),
			formatRelativeTime(env.CreatedAt, now)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Reclaimable: %s\n", formatSize(total)))

	return sb.String()
}

// formatSize converts bytes to a human-readable size.
func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "—"
	}
	return humanize.IBytes(uint64(bytes))
}

// formatLastUsed formats a nullable last-used timestamp.
func formatLastUsed(t *time.Time, now time.Time) string {
	if t == nil {
		return "never"
	}
	return formatRelativeTime(*t, now)
}

// formatRelativeTime converts a timestamp to relative time (e.g. "2 days ago").
func formatRelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
