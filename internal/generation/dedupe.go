package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"golang.org/x/sync/singleflight"
)

// Deduper collapses identical generations that are in flight at the same
// time into one model call. Callers sharing a call receive the same document,
// which is safe because documents are never mutated after Generate returns.
type Deduper struct {
	next  Extractor
	group singleflight.Group
}

// NewDeduper wraps next
func NewDeduper(next Extractor) *Deduper {
	return &Deduper{next: next}
}

// Generate implements Extractor
func (d *Deduper) Generate(ctx context.Context, req types.GenerationRequest) (*types.ResumeDocument, error) {
	v, err, _ := d.group.Do(Fingerprint(req), func() (interface{}, error) {
		return d.next.Generate(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.ResumeDocument), nil
}

// Fingerprint identifies a request by content. Section order does not matter.
func Fingerprint(req types.GenerationRequest) string {
	sections := make([]string, len(req.SelectedSections))
	for i, s := range req.SelectedSections {
		sections[i] = string(s)
	}
	sort.Strings(sections)

	h := sha256.New()
	h.Write([]byte(strconv.Itoa(req.PageLimit)))
	h.Write([]byte{0})
	h.Write([]byte(req.Style))
	h.Write([]byte{0})
	for _, s := range sections {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	h.Write([]byte(req.RawText))
	return hex.EncodeToString(h.Sum(nil))
}
