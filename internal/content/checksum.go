package content

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Combine folds v into sum. The combination depends on order, so callers feed
// values in a fixed order.
func Combine(sum uint64, v uint64) uint64 {
	return sum*1000003 ^ v
}

// Checksum digests the table: entries are visited by name, each one hashed
// over its name and canonical fields, and the entry count is folded in last.
func (t Table) Checksum() (uint32, error) {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	var sum uint64
	d := xxhash.New()
	for _, name := range names {
		body, err := canonical(t[name])
		if err != nil {
			return 0, fmt.Errorf("entry %q: %w", name, err)
		}
		d.Reset()
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
		_, _ = d.Write(body)
		sum = Combine(sum, d.Sum64())
	}

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(names)))
	sum = Combine(sum, xxhash.Sum64(count[:]))

	return uint32(sum ^ sum>>32), nil
}
