package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest Dark palette
const (
	colorFg       = "\x1b[38;5;223m"
	colorGreen    = "\x1b[38;5;108m"
	colorGreenMid = "\x1b[38;5;107m"
	colorGreenDim = "\x1b[38;5;65m"
	colorAqua     = "\x1b[38;5;109m"
	colorOrange   = "\x1b[38;5;208m"
	colorYellow   = "\x1b[38;5;179m"
	colorRed      = "\x1b[38;5;167m"
	colorRedBg    = "\x1b[48;5;52m"
	colorYellowBg = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  WARN  dataset  Skipping video  video_id=NGT_0042 reason=missing keypoints"
//
// Every field is written as key=value; nothing is dropped. Fields added
// with Logger.With are kept in the embedded map encoder and written after
// the per-entry fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(colorGreenMid)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Info is the common case and carries no label
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if pairs := enc.fieldPairs(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// fieldPairs renders entry fields in call order, then context fields sorted by key.
func (enc *minimalEncoder) fieldPairs(fields []zapcore.Field) []string {
	var pairs []string
	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		m := zapcore.NewMapObjectEncoder()
		field.AddTo(m)
		val, ok := m.Fields[field.Key]
		if !ok {
			// zap.Error(nil) and other skip fields
			continue
		}
		seen[field.Key] = true
		pairs = append(pairs, formatPair(field.Key, val))
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, formatPair(k, enc.Fields[k]))
	}

	return pairs
}

func formatPair(key string, val interface{}) string {
	s := fmt.Sprint(val)
	switch key {
	case FieldVideoID, FieldBuildID:
		s = colorAqua + s + colorReset
	case FieldError:
		s = colorRed + s + colorReset
	default:
		switch val.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			s = colorGreen + s + colorReset
		}
	}
	return colorGreenDim + key + "=" + colorReset + s
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return colorGreenDim + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	default:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	}
}

// colorComponent picks a stable color per component name.
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	switch hash % 3 {
	case 0:
		return colorGreen
	case 1:
		return colorAqua
	default:
		return colorOrange
	}
}

// abbreviateName shortens nested component names: dataset.reader -> d.reader
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
