/*
 * Filename: /Users/htang/code/mirbench/hits.go
 * Path: /Users/htang/code/mirbench
 * Created Date: Tuesday, June 19th 2018, 4:34:11 pm
 * Author: htang
 *
 * Copyright (c) 2018 Haibao Tang
 */

package mirbench

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// BedAColumns is the width of the A side of `bedtools intersect -bed -wo`
	BedAColumns = 12
	// BedNameColumn is the 0-based column of the feature name in a BED line
	BedNameColumn = 3
)

// Hit is one line of the intersection between a read and a miRBase locus
type Hit struct {
	Read    string
	Mirna   string
	Overlap int
}

// Annotation collects the miRNAs hit by each read, and the reads per miRNA
type Annotation struct {
	Reads  map[string][]string
	Counts map[string]int
}

// Mirnas returns the sorted distinct miRNAs hit by the read
func (r *Annotation) Mirnas(read string) []string {
	return r.Reads[read]
}

// ParseHit parses a line of `bedtools intersect -bed -wo` output. The read
// occupies the first 12 columns, then come the miRBase fields and finally the
// number of overlapping bases.
func ParseHit(row string) (*Hit, error) {
	words := strings.Split(strings.TrimRight(row, "\r\n"), "\t")
	if len(words) < BedAColumns+BedNameColumn+2 {
		return nil, errors.Errorf("expect at least %d columns, got %d",
			BedAColumns+BedNameColumn+2, len(words))
	}
	overlap, err := strconv.Atoi(words[len(words)-1])
	if err != nil {
		return nil, errors.Wrapf(err, "bad overlap `%s`", words[len(words)-1])
	}
	return &Hit{
		Read:    words[BedNameColumn],
		Mirna:   words[BedAColumns+BedNameColumn],
		Overlap: overlap,
	}, nil
}

// ReadAnnotation parses the intersection file of one tool
func ReadAnnotation(annfile string) (*Annotation, error) {
	log.Noticef("Parse bedfile `%s`", annfile)
	seen := map[string]map[string]bool{}
	nHits := 0
	err := readLines(annfile, func(i int, row string) error {
		hit, err := ParseHit(row)
		if err != nil {
			return err
		}
		if seen[hit.Read] == nil {
			seen[hit.Read] = map[string]bool{}
		}
		seen[hit.Read][hit.Mirna] = true
		nHits++
		return nil
	})
	if err != nil {
		return nil, err
	}

	ann := &Annotation{Reads: map[string][]string{}, Counts: map[string]int{}}
	for read, mirnas := range seen {
		for mirna := range mirnas {
			ann.Reads[read] = append(ann.Reads[read], mirna)
			ann.Counts[mirna]++
		}
		sort.Strings(ann.Reads[read])
	}
	log.Noticef("A total of %d hits on %d reads and %d miRNAs imported",
		nHits, len(ann.Reads), len(ann.Counts))
	return ann, nil
}
