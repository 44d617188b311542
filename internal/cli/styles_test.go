package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), SuccessIcon+" saved")
	assert.Contains(t, FormatError("failed"), ErrorIcon+" failed")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("note"), "note")
	assert.Contains(t, FormatTitle("Results"), TitleIcon+" Results")
}

func TestProgress(t *testing.T) {
	assert.Nil(t, NewProgress(&bytes.Buffer{}, 1))

	var nilProgress *Progress
	assert.NotPanics(t, func() {
		nilProgress.Step("a.csv")
		nilProgress.Finish()
	})

	var buf bytes.Buffer
	p := NewProgress(&buf, 2)
	assert.NotNil(t, p)
	p.Step("a.csv")
	p.Step("b.csv")
	p.Finish()
	assert.Contains(t, buf.String(), "b.csv")
}
