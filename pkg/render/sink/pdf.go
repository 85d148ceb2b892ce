package sink

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/fonts"
	"github.com/matzehuels/tagcloud/pkg/render/palette"
)

// pdfCharWidth is the average Helvetica advance relative to font size.
const pdfCharWidth = 0.55

// RenderPDF renders the layout as a one-page PDF, one point per layout unit.
func RenderPDF(l cloud.Layout, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	bg, err := c.backgroundColor(white)
	if err != nil {
		return nil, err
	}

	f := l.Frame(c.margin)
	w, h := float64(max(1, f.Width)), float64(max(1, f.Height))
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setFill(pdf, bg)
	pdf.Rect(0, 0, w, h, "F")

	pdf.SetLineWidth(0.5)
	for i, t := range l.Tags {
		x, y := float64(t.X-f.X), float64(t.Y-f.Y)
		fill := c.palette.Color(i)
		setFill(pdf, fill)
		r, g, b := palette.Stroke(fill).RGB255()
		pdf.SetDrawColor(int(r), int(g), int(b))
		pdf.Rect(x, y, float64(t.Width), float64(t.Height), "FD")

		if !c.labels || t.Label == "" {
			continue
		}
		size := fonts.LabelSize(t.Label, t.Width, t.Height, pdfCharWidth)
		if size < 1 {
			continue
		}
		label := tr(t.Label)
		pdf.SetFont(fonts.PDFFamily, "", size)
		r, g, b = palette.TextColor(fill).RGB255()
		pdf.SetTextColor(int(r), int(g), int(b))
		tw := pdf.GetStringWidth(label)
		pdf.Text(x+(float64(t.Width)-tw)/2, y+float64(t.Height)/2+size*0.35, label)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setFill(pdf *fpdf.Fpdf, c colorful.Color) {
	r, g, b := c.RGB255()
	pdf.SetFillColor(int(r), int(g), int(b))
}
