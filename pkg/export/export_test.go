package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	return Report{
		Title: "Sensory Score Report, Assessment 5",
		Rows: []ScoreRow{
			{Label: "auditory", Seeking: 3, Avoiding: 2, Total: 5, Percentage: 83.3},
			{Label: "visual", Seeking: 0, Avoiding: 0, Total: 0, Percentage: 0},
		},
		Overall: ScoreRow{Label: "overall", Seeking: 3, Avoiding: 2, Total: 5, Percentage: 41.7},
	}
}

func TestCSVExporterFixedColumns(t *testing.T) {
	data, err := NewCSVExporter().Render(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Domain,Seeking,Avoiding,Total,Percentage", lines[0])
	assert.Equal(t, "auditory,3,2,5,83.3", lines[1])
	assert.Equal(t, "visual,0,0,0,0.0", lines[2])
	assert.Equal(t, "overall,3,2,5,41.7", lines[3])
}

func TestPDFExporterRender(t *testing.T) {
	data, err := NewPDFExporter().Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBandColorThresholds(t *testing.T) {
	r, g, b := bandColor(83.3)
	assert.Equal(t, [3]int{249, 205, 205}, [3]int{r, g, b})

	r, g, b = bandColor(50)
	assert.Equal(t, [3]int{253, 235, 200}, [3]int{r, g, b})

	r, g, b = bandColor(49.9)
	assert.Equal(t, [3]int{255, 255, 255}, [3]int{r, g, b})
}
