// Package stats implements the anonymous usage reporting client.
//
// Reporting is opt-in via the statistics toggle in the settings and is
// keyed by the stable installation identifier. Reports are best-effort:
// callers log failures and move on, a failed report never blocks or
// degrades the tool.
package stats
