// Package indexer builds, searches and cleans the per-directory index sidecars.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"indexmd/internal/application"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// Indexer walks a source tree and writes a .Index.md and .index.json for every
// directory whose contents changed since its last run.
type Indexer struct {
	tree       ports.SourceTree
	analyzer   ports.SourceAnalyzer
	summarizer ports.Summarizer
	opts       application.GenerateOptions
	cache      ports.FileCache
	logger     ports.Logger
	now        application.Clock
}

// Option configures an Indexer
type Option func(*Indexer)

// WithCache reuses file summaries whose source did not change since they were stored.
func WithCache(cache ports.FileCache) Option {
	return func(ix *Indexer) {
		ix.cache = cache
	}
}

// WithLogger sets the progress logger
func WithLogger(logger ports.Logger) Option {
	return func(ix *Indexer) {
		ix.logger = logger
	}
}

// WithClock replaces time.Now
func WithClock(now application.Clock) Option {
	return func(ix *Indexer) {
		ix.now = now
	}
}

// New creates an Indexer
func New(tree ports.SourceTree, analyzer ports.SourceAnalyzer, summarizer ports.Summarizer, opts application.GenerateOptions, options ...Option) *Indexer {
	ix := &Indexer{
		tree:       tree,
		analyzer:   analyzer,
		summarizer: summarizer,
		opts:       opts,
		now:        time.Now,
	}
	for _, opt := range options {
		opt(ix)
	}
	if ix.opts.TOCMinSections == 0 {
		ix.opts.TOCMinSections = application.DefaultTOCMinSections
	}
	if ix.opts.SuggestThreshold == 0 {
		ix.opts.SuggestThreshold = application.DefaultSuggestThreshold
	}
	if ix.opts.NoiseTerms == nil {
		ix.opts.NoiseTerms = domain.DefaultNoiseTerms
	}
	return ix
}

// Options returns the effective generate options
func (ix *Indexer) Options() application.GenerateOptions {
	return ix.opts
}

// Index regenerates the index of dir when it is stale and returns it.
// A nil index means dir was fresh and nothing below it was visited.
// depth 0 is the traversal root; its sidecars are only written with PersistRoot.
func (ix *Indexer) Index(ctx context.Context, dir string, depth int) (*domain.DirectoryIndex, domain.RunStats, error) {
	return ix.index(ctx, dir, depth, make(map[string]time.Time))
}

// index is Index with the subtree change times already computed in this run.
func (ix *Indexer) index(ctx context.Context, dir string, depth int, changes map[string]time.Time) (*domain.DirectoryIndex, domain.RunStats, error) {
	var stats domain.RunStats
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	prior := ix.priorTimestamp(dir)
	entries, err := ix.tree.ReadDir(dir)
	if err != nil {
		return nil, stats, &application.TraversalError{Path: dir, Err: err}
	}

	newest, err := ix.newestChange(entries, changes)
	if err != nil {
		return nil, stats, err
	}
	if !domain.IsStale(prior, newest, ix.opts.Force) {
		ix.logf("skip %s: not modified since %s", dir, domain.FormatTimestamp(*prior))
		stats.DirsSkipped++
		return nil, stats, nil
	}

	ix.logf("indexing %s", dir)
	stamp := ix.now()
	if prior != nil && prior.After(stamp) {
		stamp = *prior
	}

	index := &domain.DirectoryIndex{
		Path:      dir,
		Children:  []domain.Entry{},
		Timestamp: domain.FormatTimestamp(stamp),
		Kind:      domain.EntryFolder,
	}
	var blocks []string

	for _, entry := range entries {
		switch {
		case entry.IsDir:
			blocks = append(blocks, domain.Heading(2, "Folder", entry.Name))

			child, childStats, err := ix.index(ctx, entry.Path, depth+1, changes)
			stats = stats.Add(childStats)
			if err != nil {
				return nil, stats, err
			}
			if child == nil {
				// fresh: carry the child over from its sidecars
				if child = ix.priorIndex(entry.Path); child == nil {
					continue
				}
			}
			index.Children = append(index.Children, child)

			line, ok, err := ix.ask(ctx, child.BodyText, domain.FolderQuestion)
			if err != nil {
				return nil, stats, &application.TraversalError{Path: entry.Path, Err: err}
			}
			if ok {
				blocks = append(blocks, line)
			}

		case ix.analyzer.Supports(entry.Path):
			summary, cached, err := ix.fileSummary(ctx, entry)
			if err != nil {
				return nil, stats, &application.TraversalError{Path: entry.Path, Err: err}
			}
			if cached {
				stats.FilesCached++
			} else {
				stats.FilesIndexed++
			}
			index.Children = append(index.Children, summary)
			blocks = append(blocks, summary.BodyText)
		}
	}

	index.BodyText = domain.JoinBlocks(blocks...)

	tags, err := ix.suggestTags(ctx, index.ChildrenText(), domain.DirectoryTagsQuestion)
	if err != nil {
		return nil, stats, &application.TraversalError{Path: dir, Err: err}
	}
	index.Tags = tags

	if depth > 0 || ix.opts.PersistRoot {
		if err := ix.persist(index, stamp); err != nil {
			return nil, stats, &application.TraversalError{Path: dir, Err: err}
		}
		stats.DirsWritten++
	}

	return index, stats, nil
}

// fileSummary returns the cached summary of a file when it is still fresh,
// otherwise it indexes the file and stores the result.
func (ix *Indexer) fileSummary(ctx context.Context, entry ports.DirEntry) (*domain.FileSummary, bool, error) {
	if ix.cache != nil {
		cached, indexedAt, err := ix.cache.LookupFile(ctx, entry.Path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to look up cached summary: %w", err)
		}
		if cached != nil && !domain.IsStale(&indexedAt, entry.ModTime, ix.opts.Force) {
			ix.logf("reuse %s", entry.Path)
			return cached, true, nil
		}
	}

	// taken before reading the file, so an edit made while it is summarized
	// is newer than the cache entry
	indexedAt := ix.now()
	summary, err := ix.IndexFile(ctx, entry.Path)
	if err != nil {
		return nil, false, err
	}

	if ix.cache != nil {
		if err := ix.cache.StoreFile(ctx, entry.Path, indexedAt, summary); err != nil {
			return nil, false, fmt.Errorf("failed to cache summary: %w", err)
		}
	}
	return summary, false, nil
}

func (ix *Indexer) persist(index *domain.DirectoryIndex, stamp time.Time) error {
	doc := domain.ComposeMarkdown(domain.FrontMatter{Timestamp: &stamp, Tags: index.Tags}, index.BodyText)
	if err := ix.tree.WriteSidecar(index.Path, domain.SidecarMarkdown, []byte(doc)); err != nil {
		return err
	}

	if !ix.opts.WriteJSON {
		return nil
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return ix.tree.WriteSidecar(index.Path, domain.SidecarJSON, data)
}

// priorTimestamp reads the timestamp of the existing markdown sidecar.
// Anything unreadable counts as absent.
func (ix *Indexer) priorTimestamp(dir string) *time.Time {
	content, err := ix.tree.ReadSidecar(dir, domain.SidecarMarkdown)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			ix.logf("cannot read index of %s, regenerating: %v", dir, err)
		}
		return nil
	}
	return domain.ParseFrontMatter(content).Timestamp
}

// priorIndex rebuilds the index of a fresh directory from its sidecars,
// preferring the JSON record. It returns nil when neither can be read.
func (ix *Indexer) priorIndex(dir string) *domain.DirectoryIndex {
	if data, err := ix.tree.ReadSidecar(dir, domain.SidecarJSON); err == nil {
		var index domain.DirectoryIndex
		if err := json.Unmarshal(data, &index); err == nil {
			index.Path = dir
			return &index
		}
		ix.logf("cannot decode json index of %s, using markdown", dir)
	}

	content, err := ix.tree.ReadSidecar(dir, domain.SidecarMarkdown)
	if err != nil {
		ix.logf("cannot read index of %s: %v", dir, err)
		return nil
	}
	fm := domain.ParseFrontMatter(content)
	index := &domain.DirectoryIndex{
		Path:     dir,
		Children: []domain.Entry{},
		Tags:     fm.Tags,
		BodyText: domain.MarkdownBody(content),
		Kind:     domain.EntryFolder,
	}
	if index.Tags == nil {
		index.Tags = []string{}
	}
	if fm.Timestamp != nil {
		index.Timestamp = domain.FormatTimestamp(*fm.Timestamp)
	}
	return index
}

// newestChange returns the latest modification time of the files below the
// entries, truncated to the second resolution of sidecar timestamps.
// Directory times and sidecars are ignored: they move whenever a child's
// sidecars are rewritten, which says nothing about the sources.
func (ix *Indexer) newestChange(entries []ports.DirEntry, changes map[string]time.Time) (time.Time, error) {
	var newest time.Time
	for _, entry := range entries {
		var changed time.Time
		switch {
		case domain.IsSidecarName(entry.Name):
			continue
		case entry.IsDir:
			var err error
			if changed, err = ix.subtreeChange(entry.Path, changes); err != nil {
				return time.Time{}, err
			}
		default:
			changed = entry.ModTime.Truncate(time.Second)
		}
		if changed.After(newest) {
			newest = changed
		}
	}
	return newest, nil
}

func (ix *Indexer) subtreeChange(dir string, changes map[string]time.Time) (time.Time, error) {
	if changed, ok := changes[dir]; ok {
		return changed, nil
	}
	entries, err := ix.tree.ReadDir(dir)
	if err != nil {
		return time.Time{}, &application.TraversalError{Path: dir, Err: err}
	}
	changed, err := ix.newestChange(entries, changes)
	if err != nil {
		return time.Time{}, err
	}
	changes[dir] = changed
	return changed, nil
}

// ask sends text to the summarizer. Empty text never reaches it, and an
// empty reply comes back as ok == false.
func (ix *Indexer) ask(ctx context.Context, text, question string) (string, bool, error) {
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}
	reply, err := ix.summarizer.Summarize(ctx, text, question)
	if err != nil {
		return "", false, fmt.Errorf("failed to summarize: %w", err)
	}
	reply = domain.CleanReply(reply)
	if reply == "" {
		return "", false, nil
	}
	return reply, true, nil
}

func (ix *Indexer) suggestTags(ctx context.Context, text, question string) ([]string, error) {
	reply, ok, err := ix.ask(ctx, text, question)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	return domain.ParseTags(reply, ix.opts.NoiseTerms), nil
}

func (ix *Indexer) logf(format string, args ...any) {
	if ix.logger != nil {
		ix.logger.Printf(format, args...)
	}
}
