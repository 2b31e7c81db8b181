// Package fs provides file-based output for cleaned transcripts and audio.
package fs

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/bookvox"
	"github.com/fwojciec/bookvox/clean"
)

// FormatTranscript formats a transcript with YAML frontmatter. The hash
// fingerprints the original text so reruns over the same page can be
// recognized.
func FormatTranscript(t *bookvox.CleanedTranscript, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("tier: ")
	b.WriteString(t.Tier.String())
	b.WriteString("\npolicy: ")
	b.WriteString(t.PolicyVersion)
	b.WriteString("\nhash: ")
	b.WriteString(clean.ComputeHash(t.OriginalText))
	b.WriteString("\ncleaned: ")
	b.WriteString(now.Format("2006-01-02"))
	if t.LayoutAmbiguous {
		b.WriteString("\nlayout: ambiguous")
	}
	if t.Fallback() {
		b.WriteString("\nerror: ")
		b.WriteString(strings.ReplaceAll(t.Error, "\n", " "))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(t.Text)
	if !strings.HasSuffix(t.Text, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

// AudioExtension returns the file extension for an audio content type.
func AudioExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".mp3"
	}
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	}
	return ".mp3"
}

// Ensure Writer implements bookvox.OutputWriter at compile time.
var _ bookvox.OutputWriter = (*Writer)(nil)

// Writer writes pipeline results to a directory. Files are written to a
// temporary name and renamed into place, so readers never see a partial
// file.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// WriteTranscript writes t to <baseDir>/<name>.md.
func (w *Writer) WriteTranscript(ctx context.Context, name string, t *bookvox.CleanedTranscript) (string, error) {
	if t == nil {
		return "", bookvox.Errorf(bookvox.EINVALID, "transcript required")
	}
	path, err := w.path(name, ".md")
	if err != nil {
		return "", err
	}
	return path, writeAtomic(path, []byte(FormatTranscript(t, w.now())))
}

// WriteAudio writes a to <baseDir>/<name> with an extension matching its
// content type.
func (w *Writer) WriteAudio(ctx context.Context, name string, a *bookvox.Audio) (string, error) {
	if a == nil || len(a.Data) == 0 {
		return "", bookvox.Errorf(bookvox.EINVALID, "audio required")
	}
	path, err := w.path(name, AudioExtension(a.ContentType))
	if err != nil {
		return "", err
	}
	return path, writeAtomic(path, a.Data)
}

func (w *Writer) path(name, ext string) (string, error) {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", bookvox.Errorf(bookvox.EINVALID, "output name required")
	}
	return filepath.Join(w.baseDir, name+ext), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
