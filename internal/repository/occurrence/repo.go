// Package occurrence implements the cross-case occurrence repository over a
// Redis-backed set store. Each known content hash owns a set of "case/source"
// members; the distinct-occurrence count of a hash is the set's cardinality.
package occurrence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/casevault/filesift/internal/domain/occurrence"
	"github.com/casevault/filesift/internal/metrics"
)

const (
	typesKey  = "occ:types"
	keyPrefix = "occ:"

	filesTypeName = "files"
)

// store is the consumer interface for occurrence operations (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SCard(ctx context.Context, key string) (int64, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements the search engine's OccurrenceStore contract.
type Repo struct {
	store store
}

// New creates an occurrence repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureFrequencyType registers the files attribute type in the type registry
// if it is not there yet. Called once at startup.
func (r *Repo) EnsureFrequencyType(ctx context.Context) error {
	ok, err := r.store.Exists(ctx, typesKey)
	if err != nil {
		return fmt.Errorf("check attribute type registry: %w", err)
	}
	if ok {
		return nil
	}
	fields := map[string]string{
		strconv.FormatInt(occurrence.FilesTypeID, 10): filesTypeName,
	}
	if err := r.store.HSet(ctx, typesKey, fields); err != nil {
		return fmt.Errorf("register files attribute type: %w", err)
	}
	return nil
}

// LookupFrequencyType resolves the attribute type used for file hash
// occurrence counts.
func (r *Repo) LookupFrequencyType(ctx context.Context) (occurrence.AttributeType, error) {
	types, err := r.store.HGetAll(ctx, typesKey)
	if err != nil {
		return occurrence.AttributeType{}, fmt.Errorf("read attribute types: %w", err)
	}
	name, ok := types[strconv.FormatInt(occurrence.FilesTypeID, 10)]
	if !ok {
		return occurrence.AttributeType{}, fmt.Errorf("files attribute type %d is not registered", occurrence.FilesTypeID)
	}
	return occurrence.AttributeType{ID: occurrence.FilesTypeID, Name: name}, nil
}

// CountDistinctOccurrences returns how many distinct (case, data source)
// pairs have observed the given hash.
func (r *Repo) CountDistinctOccurrences(ctx context.Context, attrType occurrence.AttributeType, hash string) (int64, error) {
	key, err := occurrenceKey(attrType, hash)
	if err != nil {
		metrics.OccurrenceLookupsTotal.WithLabelValues("error").Inc()
		return 0, err
	}
	n, err := r.store.SCard(ctx, key)
	if err != nil {
		metrics.OccurrenceLookupsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("count occurrences: %w", err)
	}
	metrics.OccurrenceLookupsTotal.WithLabelValues("ok").Inc()
	return n, nil
}

// RecordOccurrence marks the hash as observed by the given case and data
// source. Recording the same pair twice is a no-op.
func (r *Repo) RecordOccurrence(ctx context.Context, attrType occurrence.AttributeType, hash, caseID, dataSourceID string) error {
	if caseID == "" || dataSourceID == "" {
		return fmt.Errorf("case id and data source id are required")
	}
	key, err := occurrenceKey(attrType, hash)
	if err != nil {
		return err
	}
	if _, err := r.store.SAdd(ctx, key, caseID+"/"+dataSourceID); err != nil {
		return fmt.Errorf("record occurrence: %w", err)
	}
	return nil
}

// occurrenceKey normalizes the hash and builds the set key for it.
func occurrenceKey(attrType occurrence.AttributeType, hash string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(hash))
	if normalized == "" {
		return "", fmt.Errorf("empty content hash")
	}
	return keyPrefix + strconv.FormatInt(attrType.ID, 10) + ":" + normalized, nil
}
