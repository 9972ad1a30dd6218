/*
 * Filename: /Users/htang/code/mirbench/stats.go
 * Path: /Users/htang/code/mirbench
 * Created Date: Tuesday, June 19th 2018, 4:34:11 pm
 * Author: htang
 *
 * Copyright (c) 2018 Haibao Tang
 */

package mirbench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// H is the header shared by all the per-tool tables in the summary
const H = "tool\tread\tmirna\tisomir\tmapped\talignments\tnm\tannotated\tcategory"

// Category is the outcome of one simulated read for one tool
type Category string

// Outcomes of a read, from worst to best
const (
	Unmapped    Category = "unmapped"
	Unannotated Category = "unannotated"
	Wrong       Category = "wrong"
	Ambiguous   Category = "ambiguous"
	Correct     Category = "correct"
)

// Categories lists all outcomes in the order they are reported
var Categories = []Category{Correct, Ambiguous, Wrong, Unannotated, Unmapped}

// StatRow compares the annotation of one read to its ground truth
type StatRow struct {
	Tool      string
	Read      *SimRead
	Mapping   *Mapping
	Annotated []string
	Category  Category
}

// Classify decides the category given the mapping and the miRNAs hit
func Classify(truth string, m *Mapping, annotated []string) Category {
	if len(annotated) == 0 {
		if m == nil || m.Alignments == 0 {
			return Unmapped
		}
		return Unannotated
	}
	found := false
	for _, mirna := range annotated {
		if mirna == truth {
			found = true
			break
		}
	}
	switch {
	case !found:
		return Wrong
	case len(annotated) > 1:
		return Ambiguous
	}
	return Correct
}

// String outputs the tab-separated row, with the columns of H
func (r StatRow) String() string {
	isomir := "no"
	if r.Read.IsIsomir() {
		isomir = "yes"
	}
	mapped, alignments, nm := "no", 0, NA
	if r.Mapping != nil && r.Mapping.Alignments > 0 {
		mapped = "yes"
		alignments = r.Mapping.Alignments
		if r.Mapping.NM >= 0 {
			nm = strconv.Itoa(r.Mapping.NM)
		}
	}
	annotated := NA
	if len(r.Annotated) > 0 {
		annotated = strings.Join(r.Annotated, ",")
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s",
		r.Tool, r.Read.Name, r.Read.Mirna, isomir, mapped, alignments, nm,
		annotated, r.Category)
}

// CompareReads builds one row per simulated read, in the order of the FASTA
func CompareReads(tool string, sim *SimReads, ann *Annotation, mapped map[string]*Mapping) []StatRow {
	rows := make([]StatRow, 0, len(sim.Reads))
	for _, read := range sim.Reads {
		m := mapped[read.Name]
		annotated := ann.Mirnas(read.Name)
		rows = append(rows, StatRow{
			Tool:      tool,
			Read:      read,
			Mapping:   m,
			Annotated: annotated,
			Category:  Classify(read.Mirna, m, annotated),
		})
	}
	return rows
}

// WriteStats writes the rows without header, and logs the outcome counts
func WriteStats(w io.Writer, tool string, rows []StatRow) error {
	bw := bufio.NewWriter(w)
	counts := map[Category]int{}
	isomirs := map[Category]int{}
	for _, row := range rows {
		counts[row.Category]++
		if row.Read.IsIsomir() {
			isomirs[row.Category]++
		}
		fmt.Fprintln(bw, row)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	for _, c := range Categories {
		log.Noticef("%s %s: %s (isomiRs: %d)", tool, c, Percentage(counts[c], len(rows)), isomirs[c])
	}
	return nil
}

// StatsCollector scores one tool against the simulated reads
type StatsCollector struct {
	Tool       string
	Annotation string
	Alignment  string
	Fasta      string
	Prefix     string
	// Output file
	OutStatsfile string
}

// Run writes Prefix.tsv unless it exists already
func (r *StatsCollector) Run() error {
	output := r.Prefix + ".tsv"
	r.OutStatsfile = output
	if IsThere(output) {
		log.Noticef("Found `%s`, skipped", output)
		return nil
	}

	sim, err := ReadSimFasta(r.Fasta)
	if err != nil {
		return err
	}
	ann, err := ReadAnnotation(r.Annotation)
	if err != nil {
		return err
	}
	mapped, err := ReadMapped(r.Alignment)
	if err != nil {
		return err
	}
	rows := CompareReads(r.Tool, sim, ann, mapped)

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "cannot create `%s`", output)
	}
	err = WriteStats(f, r.Tool, rows)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A partial table would be skipped on the next run
		os.Remove(output)
		return errors.Wrapf(err, "cannot write `%s`", output)
	}
	log.Noticef("Stats written to `%s`", output)
	return nil
}
