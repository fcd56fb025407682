package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// LineFormatter prints each entry as "[LEVEL] message", without timestamps
// or fields, which suits multi-line structure dumps.
type LineFormatter struct {
	// DisableLevel drops the level prefix.
	DisableLevel bool
}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if !f.DisableLevel {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(e.Level.String()))
	}
	b.WriteString(e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Data)) {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
