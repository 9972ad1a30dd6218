/**
 * Filename: /Users/bao/code/mirbench/base.go
 * Path: /Users/bao/code/mirbench
 * Created Date: Tuesday, January 2nd 2018, 8:07:22 pm
 * Author: bao
 *
 * Copyright (c) 2018 Haibao Tang
 */

package mirbench

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

const (
	// Version is the current version of mirbench
	Version = "0.1.0"
	// DefaultOverlap is the minimum fraction of a read that must fall in a miRBase locus
	DefaultOverlap = 0.80
	// SummaryFile collects the tables of all the tools
	SummaryFile = "summary.tsv"
	// AnnotationFile is the bedtools intersect output in each tool directory
	AnnotationFile = "mirbase.bed"
	// NA marks a missing value in the stats tables
	NA = "NA"
)

var log = logging.MustGetLogger("mirbench")
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} | %{level:.6s} %{color:reset} %{message}`,
)

// Backend is the default stderr output
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

// BackendFormatter contains the fancy debug formatter
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

// banner prints the separate steps
func banner(message string) {
	message = "* " + message + " *"
	log.Noticef(strings.Repeat("*", len(message)))
	log.Noticef(message)
	log.Noticef(strings.Repeat("*", len(message)))
}

// IsThere checks if a file is already on disk. Contents are not checked.
func IsThere(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsNewerFile checks if file a is newer than file b
func IsNewerFile(a, b string) bool {
	af, aerr := os.Stat(a)
	bf, berr := os.Stat(b)
	if os.IsNotExist(aerr) || os.IsNotExist(berr) {
		return false
	}
	return af.ModTime().Sub(bf.ModTime()) > 0
}

// Full returns the absolute path, falling back to the input on failure
func Full(filename string) string {
	if filename == "" {
		return filename
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return filename
	}
	return abs
}

// Percentage prints a human readable message of the percentage
func Percentage(a, b int) string {
	if b == 0 {
		return fmt.Sprintf("%d of %d", a, b)
	}
	return fmt.Sprintf("%d of %d (%.1f %%)", a, b, float64(a)*100./float64(b))
}

// ropen opens a plain or compressed file for reading. An empty file gives a nil
// reader and no error, tools write those when they have no hits.
func ropen(filename string) (*xopen.Reader, error) {
	fh, err := xopen.Ropen(filename)
	if err == xopen.ErrNoContent {
		log.Warningf("`%s` is empty", filename)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open `%s`", filename)
	}
	return fh, nil
}

// readLines calls fn on every non-blank line of filename, with its 1-based
// line number. Errors from fn are prefixed with filename:line.
func readLines(filename string, fn func(i int, row string) error) error {
	fh, err := ropen(filename)
	if err != nil || fh == nil {
		return err
	}
	defer fh.Close()

	for i := 1; ; i++ {
		row, err := fh.ReadString('\n')
		if strings.TrimSpace(row) != "" {
			if ferr := fn(i, row); ferr != nil {
				return errors.Wrapf(ferr, "%s:%d", filename, i)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "cannot read `%s`", filename)
		}
	}
}
