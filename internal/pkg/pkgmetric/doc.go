// Package pkgmetric registers the Prometheus collectors tracking the upload
// ingestion pipeline and exposes the scrape handler.
package pkgmetric
