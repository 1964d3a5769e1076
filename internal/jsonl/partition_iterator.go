package jsonl

import (
	"bufio"
	"sync"

	"github.com/tidwall/gjson"
)

// PartitionIterator produces Partitions from a stream of JSONL data
type PartitionIterator struct {
	parser  *Parser
	scanner *bufio.Scanner
	hasNext bool
	lock    sync.Mutex
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (it *PartitionIterator) HasNextPartition() bool {
	it.lock.Lock()
	defer it.lock.Unlock()
	return it.hasNext
}

// NextPartition returns the next Partition, which may be empty at the end of the input. Lines which
// are not valid JSON are kept as-is, and have no fields.
func (it *PartitionIterator) NextPartition() (Partition, error) {
	it.lock.Lock()
	defer it.lock.Unlock()
	part := make(Partition, 0, it.parser.PartitionSize())
	for len(part) < it.parser.PartitionSize() {
		if !it.scanner.Scan() {
			it.hasNext = false
			if err := it.scanner.Err(); err != nil {
				return nil, err
			}
			return part, nil
		}
		line := it.scanner.Text()
		if it.parser.skip(line) {
			continue
		}
		part = append(part, gjson.Parse(line))
	}
	return part, nil
}
