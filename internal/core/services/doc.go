// Package services contains the application's use-case layer.
//
// Services implement the driving ports by orchestrating domain types
// and driven ports. They hold no transport or storage concerns of
// their own: the ingestion service walks files through validate,
// clean, chunk, embed and index; the search service embeds queries and
// ranks hits; the document service lists, deletes and previews.
package services
