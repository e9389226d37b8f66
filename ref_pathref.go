package msgconv

import (
	"strconv"
	"strings"
)

// PathSeparator joins path segments in rendered errors.
const PathSeparator = "."

// IndexSegment renders a list index path segment: "[i]".
func IndexSegment(i int) string { return "[" + strconv.Itoa(i) + "]" }

// JoinPath renders segments the way Error.PathString does.
func JoinPath(segments ...string) string { return strings.Join(segments, PathSeparator) }
