package jsonl

import (
	"bufio"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser
type ParserConf struct {
	PartitionSize int  // The maximum number of records per Partition. Defaults to 128.
	HeaderLines   int  // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Comment       rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int  // Maximum size in bytes of the buffer used to read lines from the input
}

// A Partition is a batch of parsed records
type Partition []gjson.Result

// Parser produces Partitions from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize <= 0 {
		conf.PartitionSize = 128
	}
	if conf.MaxBufferSize <= 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in records of Partitions produced by this Parser
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

// Parse starts parsing JSONL data, returning an iterator over its Partitions
func (p *Parser) Parse(r io.Reader) (*PartitionIterator, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(4096, p.conf.MaxBufferSize)), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return &PartitionIterator{parser: p, scanner: scanner, hasNext: true}, nil
}

// ParseAll parses all of the JSONL data in r
func (p *Parser) ParseAll(r io.Reader) ([]Partition, error) {
	it, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	var parts []Partition
	for it.HasNextPartition() {
		part, err := it.NextPartition()
		if err != nil {
			return nil, err
		}
		if len(part) > 0 {
			parts = append(parts, part)
		}
	}
	return parts, nil
}

func (p *Parser) skip(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return true
	}
	return p.conf.Comment != 0 && strings.HasPrefix(trimmed, string(p.conf.Comment))
}
