// Package tasks runs long guest-list operations against the collection service with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes one export per party:
//
//  1. Lists every party (or the requested subset)
//  2. Fetches each party's attendees, paced by a [rate.Limiter]
//  3. Writes the guest list with a pool of workers in the chosen [formatter.Format]
//  4. Writes export_manifest.json summarizing successes and failures
//
// A failing party does not stop the run; it is recorded in the manifest.
//
// # Progress Reporting
//
// Updates are sent on an optional channel as [ProgressUpdate] values.
// Sends use select with default so a slow reader never blocks the export.
package tasks
