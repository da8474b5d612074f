package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/idocr/idocr/internal/llm"
)

func strptr(s string) *string { return &s }

func TestExportXLSX(t *testing.T) {
	entries := []Entry{
		{
			SourcePath: "/docs/aadhaar.png",
			Fields: llm.IdentityFields{
				Name:           strptr("Asha Rao"),
				DOB:            strptr("01-01-1990"),
				DocumentNumber: strptr("1234 5678 9012"),
				DocumentType:   strptr("Aadhaar card"),
			},
			ExecutionTime: 1.25,
		},
		{
			SourcePath: "/docs/broken.pdf",
			Err:        errors.New("decode rendered page: unexpected EOF"),
		},
	}

	book, err := NewService(nil).ExportXLSX(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "File", get("A1"))
	assert.Equal(t, "Name", get("B1"))
	assert.Equal(t, "Document Number", get("E1"))

	assert.Equal(t, "/docs/aadhaar.png", get("A2"))
	assert.Equal(t, "Asha Rao", get("B2"))
	assert.Equal(t, "01-01-1990", get("C2"))
	assert.Equal(t, "", get("D2")) // phone was null
	assert.Equal(t, "1234 5678 9012", get("E2"))
	assert.Equal(t, "Aadhaar card", get("G2"))
	assert.Equal(t, "1.250", get("J2"))

	assert.Equal(t, "/docs/broken.pdf", get("A3"))
	assert.Contains(t, get("K3"), "unexpected EOF")
}

func TestExportXLSXEmpty(t *testing.T) {
	book, err := NewService(nil).ExportXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "File", v)
}
