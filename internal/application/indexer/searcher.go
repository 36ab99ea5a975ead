package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"indexmd/internal/application"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// Search walks every directory below root, pre-order, and reports those whose
// markdown body contains q.Term or whose JSON sidecar carries one of q.Tags.
// It only reads sidecars. A directory matching both checks is reported twice,
// the text match first.
func Search(ctx context.Context, tree ports.SourceTree, root string, q application.Query) ([]domain.Match, error) {
	matches, err := searchSubdirs(ctx, tree, root, q)
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, err
}

// searchSubdirs returns the matches of dir's subdirectories in pre-order.
// On error the matches found so far are returned with it.
func searchSubdirs(ctx context.Context, tree ports.SourceTree, dir string, q application.Query) ([]domain.Match, error) {
	entries, err := tree.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", dir, err)
	}

	var matches []domain.Match
	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}
		if err := ctx.Err(); err != nil {
			return matches, err
		}

		found, err := matchDir(tree, entry.Path, q)
		if err != nil {
			return matches, err
		}
		matches = append(matches, found...)

		below, err := searchSubdirs(ctx, tree, entry.Path, q)
		matches = append(matches, below...)
		if err != nil {
			return matches, err
		}
	}
	return matches, nil
}

func matchDir(tree ports.SourceTree, dir string, q application.Query) ([]domain.Match, error) {
	var found []domain.Match

	if q.Term != "" {
		content, ok, err := readSidecar(tree, dir, domain.SidecarMarkdown)
		if err != nil {
			return nil, err
		}
		if ok && strings.Contains(domain.MarkdownBody(content), q.Term) {
			found = append(found, domain.Match{Path: dir, Rank: 1, Source: domain.MatchText})
		}
	}

	if len(q.Tags) > 0 {
		content, ok, err := readSidecar(tree, dir, domain.SidecarJSON)
		if err != nil {
			return nil, err
		}
		if ok && hasAnyTag(content, q.Tags) {
			found = append(found, domain.Match{Path: dir, Rank: 1, Source: domain.MatchTags})
		}
	}
	return found, nil
}

func readSidecar(tree ports.SourceTree, dir string, kind domain.SidecarKind) ([]byte, bool, error) {
	content, err := tree.ReadSidecar(dir, kind)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s sidecar of %s: %w", kind, dir, err)
	}
	return content, true, nil
}

// hasAnyTag reports whether the record's tags include one of want.
// A record that does not decode has no tags.
func hasAnyTag(record []byte, want []string) bool {
	var sidecar struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(record, &sidecar); err != nil {
		return false
	}
	for _, tag := range want {
		if slices.Contains(sidecar.Tags, tag) {
			return true
		}
	}
	return false
}
