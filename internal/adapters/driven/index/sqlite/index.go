// Package sqlite provides a persistent vector index backed by SQLite.
//
// Vectors are stored as little-endian float32 blobs and similarity is
// computed in-process with a full scan. That scan is linear in the
// number of entries, which is fine at the scale this tool targets.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docvec-cli/internal/adapters/driven/index/sqlite/migrations"
	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a SQLite-backed vector index scoped to one collection.
// Each embedding backend identity gets its own collection, so vectors
// from different models never mix.
type Index struct {
	db         *sql.DB
	path       string
	collection string
}

// Config holds configuration for the SQLite index.
type Config struct {
	// DataDir is the directory holding the database file.
	// If empty, defaults to ~/.docvec/data.
	DataDir string

	// Collection scopes all entries. Required.
	Collection string
}

// NewIndex opens (creating if needed) the vector database and scopes
// it to the configured collection.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvec", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:         db,
		path:       dbPath,
		collection: cfg.Collection,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return idx, nil
}

// Path returns the database file path.
func (idx *Index) Path() string {
	return idx.path
}

// Collection returns the collection this index is scoped to.
func (idx *Index) Collection() string {
	return idx.collection
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// migrate runs all pending migrations.
func (idx *Index) migrate(fsys embed.FS) error {
	_, err := idx.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := idx.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := idx.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := idx.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Add upserts one entry per chunk/vector pair within the collection.
func (idx *Index) Add(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) ([]string, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors",
			domain.ErrIndexMismatch, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	dim, err := idx.storedDimension(ctx)
	if err != nil {
		return nil, err
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty vector at position %d", domain.ErrDimensionMismatch, i)
		}
		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return nil, fmt.Errorf("%w: vector at position %d has dimension %d, index has %d",
				domain.ErrDimensionMismatch, i, len(v), dim)
		}
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (collection, id, source_filename, chunk_index, start_offset, end_offset, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			source_filename = excluded.source_filename,
			chunk_index = excluded.chunk_index,
			start_offset = excluded.start_offset,
			end_offset = excluded.end_offset,
			content = excluded.content,
			embedding = excluded.embedding,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		id := chunk.EntryID()
		blob := float32SliceToBytes(vectors[i])

		if _, err := stmt.ExecContext(ctx, idx.collection, id, chunk.SourceFilename,
			chunk.Index, chunk.Start, chunk.End, chunk.Text, blob); err != nil {
			return nil, fmt.Errorf("saving entry %s: %w", id, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return ids, nil
}

// Search scans the collection and returns up to topK entries ranked by
// descending cosine similarity score. Ties break on rowid order.
func (idx *Index) Search(ctx context.Context, query []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive, got %d", domain.ErrInvalidInput, topK)
	}

	dim, err := idx.storedDimension(ctx)
	if err != nil {
		return nil, err
	}
	if dim != 0 && len(query) != dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), dim)
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT id, source_filename, chunk_index, start_offset, end_offset, content, embedding
		FROM entries WHERE collection = ?
		ORDER BY rowid
	`, idx.collection)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.SearchResult
		var blob []byte
		if err := rows.Scan(&r.ID, &r.Metadata.SourceFilename, &r.Metadata.ChunkIndex,
			&r.Metadata.Start, &r.Metadata.End, &r.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		r.Score = cosineScore(query, bytesToFloat32Slice(blob))
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	if results == nil {
		return []domain.SearchResult{}, nil
	}
	return results[:topK], nil
}

// ListDocuments returns the sorted, de-duplicated source filenames in
// the collection.
func (idx *Index) ListDocuments(ctx context.Context) ([]string, error) {
	rows, err := idx.db.QueryContext(ctx, `
		SELECT DISTINCT source_filename FROM entries
		WHERE collection = ?
		ORDER BY source_filename
	`, idx.collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning document name: %w", err)
		}
		docs = append(docs, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes every entry for the given source filename.
// Deleting an absent filename succeeds without change.
func (idx *Index) DeleteDocument(ctx context.Context, filename string) (bool, error) {
	_, err := idx.db.ExecContext(ctx, `
		DELETE FROM entries WHERE collection = ? AND source_filename = ?
	`, idx.collection, filename)
	if err != nil {
		return false, fmt.Errorf("deleting document: %w", err)
	}
	return true, nil
}

// storedDimension reads the dimension of any one stored vector, or 0
// when the collection is empty.
func (idx *Index) storedDimension(ctx context.Context) (int, error) {
	var length sql.NullInt64
	err := idx.db.QueryRowContext(ctx, `
		SELECT LENGTH(embedding) FROM entries WHERE collection = ? LIMIT 1
	`, idx.collection).Scan(&length)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading stored dimension: %w", err)
	}
	if !length.Valid {
		return 0, nil
	}
	return int(length.Int64) / 4, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineScore maps cosine distance into a similarity score in [0,1].
func cosineScore(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	distance := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	score := (2 - distance) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
