package overlay

import (
	"bytes"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// textStreams returns the decoded content and form streams of a PDF that draw text.
func textStreams(t *testing.T, data []byte) string {
	t.Helper()

	ctx, err := api.ReadContext(bytes.NewReader(data), newConfiguration())
	require.NoError(t, err)

	var streams []string
	for _, entry := range ctx.XRefTable.Table {
		if entry == nil || entry.Free {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if err := sd.Decode(); err != nil {
			continue
		}
		if bytes.Contains(sd.Content, []byte("Tj")) {
			streams = append(streams, string(sd.Content))
		}
	}
	sort.Strings(streams)
	return strings.Join(streams, "\n")
}

func readTemplate(t *testing.T, w, h float64) ([]byte, *Geometry) {
	t.Helper()
	doc, err := os.ReadFile(writeTemplate(t, w, h))
	require.NoError(t, err)
	geo, err := InspectBytes(doc)
	require.NoError(t, err)
	return doc, geo
}

func TestStrategiesShareBaseline(t *testing.T) {
	doc, geo := readTemplate(t, 600, 400)

	layout := models.DefaultFieldLayout()
	layout.XPercent = 20
	layout.YPercent = 50
	layout.FontSize = 40
	layout.Font = writeFont(t)
	p := NewPlacement("full_name", "Ada", layout, geo)

	for _, s := range DefaultStrategies(NewFontCache(), zaptest.NewLogger(t)) {
		t.Run(s.Name(), func(t *testing.T) {
			out, err := s.Apply(doc, geo, p)
			require.NoError(t, err)
			assert.Contains(t, textStreams(t, out), "BT 120.00 200.00 Td")
		})
	}
}

func TestBuiltinKeepsTextVerbatim(t *testing.T) {
	doc, geo := readTemplate(t, 600, 400)

	layout := models.DefaultFieldLayout()
	layout.FontSize = 18.4
	p := NewPlacement("note", "50% off %p (100%)", layout, geo)

	out, err := NewBuiltinStrategy(zaptest.NewLogger(t)).Apply(doc, geo, p)
	require.NoError(t, err)

	content := textStreams(t, out)
	assert.Contains(t, content, `(50% off %p \(100%\)) Tj`)
	assert.Contains(t, content, "18.40 Tf")
}

func TestBuiltinWarnsOnUnencodableRunes(t *testing.T) {
	doc, geo := readTemplate(t, 600, 400)
	core, logs := observer.New(zapcore.WarnLevel)

	p := NewPlacement("full_name", "Łukasz Zoë", models.DefaultFieldLayout(), geo)
	out, err := NewBuiltinStrategy(zap.New(core)).Apply(doc, geo, p)
	require.NoError(t, err)

	assert.Contains(t, textStreams(t, out), "(?ukasz Zo\xeb) Tj")

	warnings := logs.FilterMessage("Characters not in the builtin font were replaced").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Ł", warnings[0].ContextMap()["characters"])
	assert.Equal(t, "full_name", warnings[0].ContextMap()["field"])
}

func TestEncodeWinAnsi(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		missing  string
	}{
		{"Ada Lovelace", "Ada Lovelace", ""},
		{"Zoë – 100%", "Zo\xeb \x96 100%", ""},
		{"李小龍", "???", "李小龍"},
		{"", "", ""},
	}

	for _, tt := range tests {
		result, missing := encodeWinAnsi(tt.input)
		if result != tt.expected {
			t.Errorf("encodeWinAnsi(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
		if string(missing) != tt.missing {
			t.Errorf("encodeWinAnsi(%q) missing = %q, expected %q", tt.input, string(missing), tt.missing)
		}
	}
}
