// Package scraper provides HTTP fetching and HTML table extraction for the
// Kirkgate Market events page.
//
// The scraper fetches the public what's-on page and extracts the markup of
// the events table (the first <table> inside the first <main> element).
// Extraction deliberately fails loudly when those landmarks are missing:
// a layout change upstream should break the run, not silently produce an
// empty calendar.
package scraper
