// Package identity derives the keys postings are deduplicated by.
package identity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/normalize"
)

const (
	maxSourceIDLen     = 64
	slugSuffixLen      = 6
	fallbackDigestSize = 16
)

// SourceID returns the dedupe key of a posting within its source. A
// non-empty upstream id is used verbatim (first 64 chars); otherwise a
// 16-hex-char digest of source, title and company stands in.
func SourceID(source, externalID, title, company string) string {
	if id := strings.TrimSpace(externalID); id != "" {
		return normalize.Truncate(id, maxSourceIDLen)
	}
	raw := strings.ToLower(fmt.Sprintf("%s:%s:%s", source, title, company))
	return fmt.Sprintf("%0*x", fallbackDigestSize, xxhash.Sum64String(raw))
}

// CanonicalSourceTag folds the scraper's site names into our spelling.
func CanonicalSourceTag(site string) string {
	tag := strings.ToLower(strings.TrimSpace(site))
	if tag == "" {
		return string(models.SourceManual)
	}
	if tag == "zip_recruiter" {
		return string(models.SourceZipRecruiter)
	}
	return tag
}

// PostingSlug is the slug a posting gets when nothing else holds it.
func PostingSlug(title, company string) string {
	return normalize.Truncate(normalize.Slugify(title+"-"+company), models.MaxPostingSlugLength)
}

// SlugCandidates lists the forms a taken slug may fall back to, shortest
// first. Each one suffixes the slug with a longer prefix of the source id,
// doubling from six runes until the whole id is used.
func SlugCandidates(slug, sourceID string) []string {
	var (
		out  []string
		last string
	)
	total := utf8.RuneCountInString(sourceID)
	for n := slugSuffixLen; ; n *= 2 {
		frag := normalize.Slugify(normalize.Truncate(sourceID, n))
		if frag != "" && frag != last {
			out = append(out, slug+"-"+frag)
			last = frag
		}
		if n >= total {
			break
		}
	}
	return out
}
