package attach

// This file turns raw captured artifacts into presentation-ready
// references: inline data URIs or stored blobs under the output
// directory. Materialization is best-effort; a missing or unreadable
// source degrades to a placeholder instead of failing the run.

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/runledger/runledger/model"
)

// Mode selects how materialized attachments are represented.
type Mode string

const (
	// ModeInline embeds attachment bytes as a base64 data URI.
	ModeInline Mode = "inline"
	// ModeStored writes attachment bytes as a blob under the output
	// directory and references it by relative path.
	ModeStored Mode = "stored"
)

// Options configures a Materializer.
type Options struct {
	// Representation mode for materialized attachments
	Mode Mode
	// Re-encode images (except GIF) to JPEG before embedding/storing
	CompressImages bool
	// JPEG quality, clamped to [1,100]
	Quality int
	// Report output directory; stored blobs go to OutDir/attachments
	OutDir string
}

// Materializer converts raw attachments into their final form. It is
// safe for concurrent use.
type Materializer struct {
	logger zerolog.Logger
	opts   Options
}

// New returns a materializer for opts, clamping the JPEG quality into
// its valid range.
func New(logger zerolog.Logger, opts Options) *Materializer {
	if opts.Quality < 1 {
		opts.Quality = 1
	} else if opts.Quality > 100 {
		opts.Quality = 100
	}
	return &Materializer{logger: logger, opts: opts}
}

// Materialize resolves one raw attachment. The returned error reports
// a degraded result (placeholder or skipped blob write) for logging;
// it is never fatal to the run, and the returned attachment is always
// usable.
func (m *Materializer) Materialize(identity model.TestIdentity, retry int, raw model.RawAttachment) (model.MaterializedAttachment, error) {
	att := model.MaterializedAttachment{
		Name:        raw.Name,
		ContentType: raw.ContentType,
		Retry:       retry,
	}

	body := raw.Body
	if len(body) == 0 && raw.Path != "" {
		data, err := os.ReadFile(raw.Path)
		if err != nil {
			att.Missing = true
			return att, fmt.Errorf("attachment %q: read %s: %w", raw.Name, raw.Path, err)
		}
		body = data
	}
	if len(body) == 0 {
		att.Missing = true
		return att, fmt.Errorf("attachment %q has no readable source", raw.Name)
	}

	if m.opts.CompressImages && compressible(att.ContentType) {
		recoded, err := recodeJPEG(body, m.opts.Quality)
		if err != nil {
			m.logger.Debug().Err(err).Str("attachment", raw.Name).Msg("Image re-encode failed, keeping original bytes")
		} else {
			body = recoded
			att.ContentType = "image/jpeg"
		}
	}

	if m.opts.Mode == ModeInline {
		att.Body = "data:" + att.ContentType + ";base64," + base64.StdEncoding.EncodeToString(body)
		return att, nil
	}

	dir := filepath.Join(m.opts.OutDir, "attachments")
	if err := os.MkdirAll(dir, 0755); err != nil {
		att.Missing = true
		return att, fmt.Errorf("attachment %q: create blob dir: %w", raw.Name, err)
	}
	name := storedName(identity, raw.Name, retry, att.ContentType)
	if err := os.WriteFile(filepath.Join(dir, name), body, 0644); err != nil {
		att.Missing = true
		return att, fmt.Errorf("attachment %q: write blob: %w", raw.Name, err)
	}
	att.Ref = path.Join("attachments", name)
	return att, nil
}

// blobSeq breaks ties between blobs written within the same clock
// tick.
var blobSeq atomic.Uint64

// storedName builds a collision-resistant blob filename from the test
// identity, the attachment name, the retry index and a time-based
// disambiguator.
func storedName(identity model.TestIdentity, name string, retry int, contentType string) string {
	sum := sha256.Sum256([]byte(identity.Key()))
	nano := strconv.FormatInt(time.Now().UnixNano(), 36)
	return fmt.Sprintf("%s-%s-r%d-%s%d%s",
		hex.EncodeToString(sum[:8]), slug(name), retry, nano, blobSeq.Add(1), extensionFor(contentType))
}

// slug reduces an attachment name to a short filesystem-safe token.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
		if b.Len() >= 40 {
			break
		}
	}
	s := strings.Trim(b.String(), "-.")
	if s == "" {
		return "attachment"
	}
	return s
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "text/plain":
		return ".txt"
	case "application/json":
		return ".json"
	case "application/zip":
		return ".zip"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
