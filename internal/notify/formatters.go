package notify

import (
	"fmt"
	"strings"

	"remote-jobs-pipeline/internal/aggregate"
	"remote-jobs-pipeline/internal/ingest"
	"remote-jobs-pipeline/internal/registry"
	"remote-jobs-pipeline/internal/sweeper"
)

// FormatIngestReport renders the outcome of one ingestion batch. sweep is
// nil for batches that did not run the sweeper.
func FormatIngestReport(batch, total int, summary ingest.Summary, sweep *sweeper.Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📥 *Ingestion batch %d/%d*\n\n", batch+1, total))
	sb.WriteString(fmt.Sprintf("🆕 New: %d\n", summary.New))
	sb.WriteString(fmt.Sprintf("♻️ Skipped: %d\n", summary.Skipped))
	sb.WriteString(fmt.Sprintf("⚠️ Errors: %d\n", summary.Errors))

	if summary.Rejected > 0 {
		sb.WriteString(fmt.Sprintf("🚫 Rejected: %d\n", summary.Rejected))
	}
	if summary.FailedQueries > 0 {
		sb.WriteString(fmt.Sprintf("❌ Failed queries: %d\n", summary.FailedQueries))
	}

	if sweep != nil {
		sb.WriteString(fmt.Sprintf("\n🧹 Deactivated: %d\n", sweep.Deactivated))
		sb.WriteString(fmt.Sprintf("📊 Categories recounted: %d\n", sweep.CategoriesUpdated))
	}

	return sb.String()
}

func FormatAggregateReport(bench aggregate.BenchmarkResult, snap aggregate.SnapshotResult) string {
	var sb strings.Builder

	sb.WriteString("📈 *Aggregation finished*\n\n")
	sb.WriteString(fmt.Sprintf("💰 Benchmarks: %d from %d postings\n", bench.Inserted, bench.Postings))

	date := EscapeMarkdown(snap.Date)
	if snap.Skipped {
		sb.WriteString(fmt.Sprintf("🗓 Snapshot %s already existed\n", date))
	} else {
		sb.WriteString(fmt.Sprintf("🗓 Snapshot %s: %d rows\n", date, snap.Rows))
	}

	return sb.String()
}

// FormatMaintenanceReport renders a standalone sweep plus logo backfill.
func FormatMaintenanceReport(sweep sweeper.Result, logos registry.LogoBackfill) string {
	var sb strings.Builder

	sb.WriteString("🛠 *Maintenance finished*\n\n")
	sb.WriteString(fmt.Sprintf("🧹 Deactivated: %d\n", sweep.Deactivated))
	sb.WriteString(fmt.Sprintf("📊 Categories recounted: %d\n", sweep.CategoriesUpdated))
	sb.WriteString(fmt.Sprintf("🖼 Logos set: %d, cleared: %d\n", logos.Set, logos.Cleared))

	if logos.Failed > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Logo updates failed: %d\n", logos.Failed))
	}

	return sb.String()
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	return markdownReplacer.Replace(text)
}

var markdownReplacer = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)
