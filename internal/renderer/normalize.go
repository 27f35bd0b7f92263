package renderer

import (
	"bytes"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// usesStreamXRef reports whether data keeps its cross-reference data or
// objects in streams (PDF 1.5+), which the page importer cannot read.
func usesStreamXRef(data []byte) bool {
	return bytes.Contains(data, []byte("/XRef")) || bytes.Contains(data, []byte("/ObjStm"))
}

// classicXRef rewrites data with a plain cross-reference table and without
// object streams. Documents already laid out that way are returned as is.
func classicXRef(data []byte) ([]byte, error) {
	if !usesStreamXRef(data) {
		return data, nil
	}
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.WriteXRefStream = false
	conf.WriteObjectStream = false

	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
