// Package process runs the OSM XML to JSON conversion: it streams elements
// from the input, shapes each one and writes the accepted records, in input
// order, to the output file.
package process

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/osmwrangle/osmjson/config"
	"github.com/osmwrangle/osmjson/jsonl"
	"github.com/osmwrangle/osmjson/osmxml"
	"github.com/osmwrangle/osmjson/shape"
	"github.com/pkg/errors"
)

// OutputSuffix is appended to the input path to name the default output.
const OutputSuffix = ".json"

// OutputPath returns the default output file for input.
func OutputPath(input string) string {
	return input + OutputSuffix
}

// Stats counts what happened to the elements of one run.
type Stats struct {
	// Elements is the number of top-level elements read.
	Elements int64
	// Written is the number of records written.
	Written int64
	// Ignored counts elements that are neither nodes nor ways.
	Ignored int64
	// Skipped counts bad elements dropped under the skip policy.
	Skipped int64
	// Kinds counts elements read per kind.
	Kinds map[string]int64
}

func (s Stats) String() string {
	kinds := make([]string, 0, len(s.Kinds))
	for kind, n := range s.Kinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(kinds)
	return fmt.Sprintf("read %d elements (%s), wrote %d, ignored %d, skipped %d",
		s.Elements, strings.Join(kinds, " "), s.Written, s.Ignored, s.Skipped)
}

// A Processor converts one OSM file.
type Processor struct {
	Input         string
	Output        string
	Pretty        bool
	OnError       config.ErrorPolicy
	ProgressEvery int
	Shaper        *shape.Shaper

	// Collect keeps every written record in Records.
	Collect bool
	Records []shape.Record
}

// New creates a Processor for input configured by c. The output defaults to
// OutputPath(input).
func New(input string, c config.Config, shaper *shape.Shaper) *Processor {
	return &Processor{
		Input:         input,
		Output:        OutputPath(input),
		Pretty:        c.Pretty,
		OnError:       c.OnError,
		ProgressEvery: c.ProgressEvery,
		Shaper:        shaper,
	}
}

// Run converts p.Input into p.Output. The output is created even if the run
// fails part way; it then holds the records written before the failure.
func (p *Processor) Run() (Stats, error) {
	reader, err := osmxml.Open(p.Input)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "open %s", p.Input)
	}
	defer reader.Close()

	output := p.Output
	if output == "" {
		output = OutputPath(p.Input)
	}
	writer, err := jsonl.Create(output, p.Pretty)
	if err != nil {
		return Stats{}, errors.Wrap(err, output)
	}

	log.Printf("Converting %s -> %s", p.Input, output)
	stats, err := p.Process(reader, writer)
	if cerr := writer.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "close %s", output)
	}
	if err != nil {
		return stats, err
	}
	log.Printf("%s: %s", p.Input, stats)
	return stats, nil
}

// Process shapes every element from reader and writes the records to
// writer. It does not close either.
func (p *Processor) Process(reader *osmxml.Reader, writer *jsonl.Writer) (Stats, error) {
	stats := Stats{Kinds: map[string]int64{}}
	for {
		el, err := reader.Next()
		if err != nil {
			return stats, err
		}
		if el == nil {
			return stats, nil
		}
		stats.Elements++
		stats.Kinds[el.Kind]++
		if p.ProgressEvery > 0 && stats.Elements%int64(p.ProgressEvery) == 0 {
			log.Printf("%s: %d elements read, %d written", p.Input, stats.Elements, stats.Written)
		}

		rec, err := p.Shaper.Shape(el)
		if err != nil {
			if p.OnError == config.Skip {
				stats.Skipped++
				log.Printf("%s: skipping %s at byte %d: %s", p.Input, el, el.Offset, err)
				continue
			}
			return stats, errors.Wrapf(err, "%s at byte %d", p.Input, el.Offset)
		}
		if rec == nil {
			stats.Ignored++
			continue
		}

		if err := writer.Write(rec); err != nil {
			return stats, errors.Wrap(err, el.String())
		}
		stats.Written++
		if p.Collect {
			p.Records = append(p.Records, rec)
		}
	}
}
