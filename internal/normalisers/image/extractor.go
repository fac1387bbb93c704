// Package image extracts text from images by OCR with tesseract.
package image

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/normalisers"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const toolName = "tesseract"

// DefaultLanguages are the tesseract language packs used when none are configured.
var DefaultLanguages = []string{"eng", "rus"}

// ErrOCRToolNotFound is returned when tesseract is not installed.
var ErrOCRToolNotFound = errors.New("tesseract not found in PATH")

// Extractor handles PNG and JPEG images.
type Extractor struct {
	runner    normalisers.CommandRunner
	languages []string
}

// New creates an image extractor that runs tesseract directly.
func New(languages ...string) *Extractor {
	return NewWithRunner(normalisers.ExecRunner{}, languages...)
}

// NewWithRunner creates an image extractor with a custom command runner.
func NewWithRunner(runner normalisers.CommandRunner, languages ...string) *Extractor {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Extractor{runner: runner, languages: languages}
}

// DocType returns the document type this extractor produces.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeImage
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

// Extract runs `tesseract <file> stdout -l <langs> tsv` and returns one
// OCR_Text fragment per recognised line, all on page 1. A line's
// confidence is the mean of its word confidences scaled to [0,1].
// Filtering by confidence is left to the loader pipeline.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Fragment, error) {
	out, err := e.runner.Run(ctx, toolName, path, "stdout", "-l", strings.Join(e.languages, "+"), "tsv")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOCRToolNotFound, InstallInstructions())
		}
		return nil, fmt.Errorf("tesseract failed: %w", err)
	}
	return parseTSV(string(out)), nil
}

// CheckAvailable reports whether tesseract is on the PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrOCRToolNotFound
	}
	return nil
}

// InstallInstructions returns how to install tesseract on common platforms.
func InstallInstructions() string {
	return "install tesseract with the eng and rus language packs: " +
		"macOS: brew install tesseract tesseract-lang; " +
		"Debian/Ubuntu: apt install tesseract-ocr tesseract-ocr-rus"
}

// TSV columns emitted by tesseract.
const (
	colLevel = iota
	colPage
	colBlock
	colPar
	colLine
	colWord
	colLeft
	colTop
	colWidth
	colHeight
	colConf
	colText
	numCols
)

// wordLevel is the tesseract layout level of a single word.
const wordLevel = "5"

type ocrLine struct {
	words []string
	conf  float64
}

// parseTSV groups recognised words into lines in reading order.
// Rows that are not words, have negative confidence or blank text are skipped.
func parseTSV(tsv string) []domain.Fragment {
	var (
		order []string
		lines = make(map[string]*ocrLine)
	)

	for i, row := range strings.Split(tsv, "\n") {
		if i == 0 && strings.HasPrefix(row, "level") {
			continue
		}
		cols := strings.Split(strings.TrimRight(row, "\r"), "\t")
		if len(cols) < numCols || cols[colLevel] != wordLevel {
			continue
		}
		text := strings.TrimSpace(strings.Join(cols[colText:], "\t"))
		conf, err := strconv.ParseFloat(cols[colConf], 64)
		if text == "" || err != nil || conf < 0 {
			continue
		}

		key := strings.Join(cols[colPage:colWord], ".")
		line, ok := lines[key]
		if !ok {
			line = &ocrLine{}
			lines[key] = line
			order = append(order, key)
		}
		line.words = append(line.words, text)
		line.conf += conf
	}

	fragments := make([]domain.Fragment, 0, len(order))
	for _, key := range order {
		line := lines[key]
		fragments = append(fragments, domain.Fragment{
			Text:        strings.Join(line.words, " "),
			PageNumber:  1,
			ElementType: domain.ElementOCRText,
			Confidence:  line.conf / float64(len(line.words)) / 100,
		})
	}
	return fragments
}
