/*
 * Filename: /Users/htang/code/mirbench/mapped.go
 * Path: /Users/htang/code/mirbench
 * Created Date: Tuesday, June 19th 2018, 4:34:11 pm
 * Author: htang
 *
 * Copyright (c) 2018 Haibao Tang
 */

package mirbench

import (
	"io"
	"os"
	"path"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// nmTag is the edit distance to the reference
var nmTag = sam.NewTag("NM")

// Mapping summarizes the alignments of one read
type Mapping struct {
	Alignments int
	NM         int // -1 when no alignment reports it
}

func (m *Mapping) add(nm int) {
	m.Alignments++
	if nm >= 0 && (m.NM < 0 || nm < m.NM) {
		m.NM = nm
	}
}

// ReadMapped collects per-read alignments from a BAM file, or from a BED file
// for the tools that do not produce one
func ReadMapped(alnfile string) (map[string]*Mapping, error) {
	if strings.EqualFold(path.Ext(alnfile), ".bed") {
		return readMappedBed(alnfile)
	}
	return readMappedBam(alnfile)
}

// record returns the mapping for the read, creating it as needed
func record(mapped map[string]*Mapping, name string) *Mapping {
	m, ok := mapped[name]
	if !ok {
		m = &Mapping{NM: -1}
		mapped[name] = m
	}
	return m
}

func readMappedBam(bamfile string) (map[string]*Mapping, error) {
	fh, err := os.Open(bamfile)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open `%s`", bamfile)
	}
	defer fh.Close()

	log.Noticef("Parse bamfile `%s`", bamfile)
	br, err := bam.NewReader(fh, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open bamfile `%s`", bamfile)
	}
	defer br.Close()

	mapped := map[string]*Mapping{}
	nRecords := 0
	for {
		rec, err := br.Read()
		if err != nil {
			if err != io.EOF {
				return nil, errors.Wrapf(err, "cannot read `%s`", bamfile)
			}
			break
		}
		if rec.Flags&sam.Unmapped != 0 {
			continue
		}
		nm := -1
		if aux, ok := rec.Tag(nmTag[:]); ok {
			nm = auxInt(aux.Value())
		}
		record(mapped, rec.Name).add(nm)
		nRecords++
	}
	log.Noticef("A total of %d alignments on %d reads imported", nRecords, len(mapped))
	return mapped, nil
}

// auxInt converts the integer types of a SAM aux field
func auxInt(v interface{}) int {
	switch x := v.(type) {
	case int8:
		return int(x)
	case uint8:
		return int(x)
	case int16:
		return int(x)
	case uint16:
		return int(x)
	case int32:
		return int(x)
	case uint32:
		return int(x)
	case int:
		return x
	}
	return -1
}

func readMappedBed(bedfile string) (map[string]*Mapping, error) {
	log.Noticef("Parse bedfile `%s`", bedfile)
	mapped := map[string]*Mapping{}
	nRecords := 0
	err := readLines(bedfile, func(i int, row string) error {
		words := strings.Split(strings.TrimSpace(row), "\t")
		if len(words) <= BedNameColumn {
			return errors.Errorf("expect at least %d columns, got %d",
				BedNameColumn+1, len(words))
		}
		record(mapped, words[BedNameColumn]).add(-1)
		nRecords++
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Noticef("A total of %d alignments on %d reads imported", nRecords, len(mapped))
	return mapped, nil
}
