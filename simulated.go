/**
 * Filename: /Users/bao/code/mirbench/simulated.go
 * Path: /Users/bao/code/mirbench
 * Created Date: Wednesday, March 7th 2018, 1:56:45 pm
 * Author: bao
 *
 * Copyright (c) 2018 Haibao Tang
 */

package mirbench

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// SimRead is the ground truth carried by the name of a simulated read:
//
//   >{id}_{mirna}[_{key}:{value}]...
//
// where the optional key:value fields describe the isomiR changes, e.g. t5:0,
// t3:AG, add:null, mut:null
type SimRead struct {
	Name  string
	Mirna string
	Tags  map[string]string
	Seq   string
}

// IsIsomir tells whether any of the tags describes a change from the reference
func (r *SimRead) IsIsomir() bool {
	for _, v := range r.Tags {
		if v != "" && v != "0" && v != "null" {
			return true
		}
	}
	return false
}

// ParseSimName extracts the ground truth from a simulated read name
func ParseSimName(name string) (*SimRead, error) {
	words := strings.Split(name, "_")
	if len(words) < 2 || words[1] == "" {
		return nil, errors.Errorf("read name `%s` does not carry a miRNA", name)
	}
	r := &SimRead{Name: name, Mirna: words[1], Tags: map[string]string{}}
	for _, word := range words[2:] {
		kv := strings.SplitN(word, ":", 2)
		if len(kv) != 2 {
			continue
		}
		r.Tags[kv[0]] = kv[1]
	}
	return r, nil
}

// SimReads holds the simulated reads in the order of the FASTA file
type SimReads struct {
	Reads []*SimRead
	Index map[string]*SimRead
}

// ReadSimFasta parses the simulated reads. The read key is the first word of the
// FASTA header, which is also the query name of the alignments.
func ReadSimFasta(fastafile string) (*SimReads, error) {
	log.Noticef("Parse fastafile `%s`", fastafile)
	// An empty file gives a reader that is already at EOF
	reader, err := fastx.NewDefaultReader(fastafile)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open `%s`", fastafile)
	}
	defer reader.Close()
	seq.ValidateSeq = false // This flag makes parsing FASTA much faster

	sim := &SimReads{Index: map[string]*SimRead{}}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read `%s`", fastafile)
		}

		fields := strings.Fields(string(rec.Name))
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if _, ok := sim.Index[name]; ok {
			log.Warningf("Duplicate read `%s` ignored", name)
			continue
		}
		r, err := ParseSimName(name)
		if err != nil {
			return nil, err
		}
		r.Seq = string(rec.Seq.Seq)
		sim.Index[name] = r
		sim.Reads = append(sim.Reads, r)
	}
	log.Noticef("A total of %d simulated reads imported", len(sim.Reads))
	return sim, nil
}
