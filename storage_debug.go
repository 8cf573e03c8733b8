// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lsmkv

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DebugString renders the current version's shape — memtable state,
// immutable count, and per-source table counts — as an ASCII table. It is
// a debugging aid only, not a stable machine-readable format.
func (s *Storage) DebugString() string {
	v := s.currentVersion()

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Source", "Count", "Detail"})

	table.Append([]string{"memtable", "1", "active"})
	table.Append([]string{"immutables", fmt.Sprint(len(v.immutables)), "oldest to newest"})
	table.Append([]string{"L0", fmt.Sprint(len(v.l0)), "overlapping, newest last"})
	for i, level := range v.levels {
		table.Append([]string{fmt.Sprintf("L%d", i+1), fmt.Sprint(len(level)), "non-overlapping"})
	}
	table.Append([]string{"next_sst_id", fmt.Sprint(v.nextSSTID), ""})

	table.Render()
	return sb.String()
}
