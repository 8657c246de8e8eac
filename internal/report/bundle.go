package report

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// BundlePDF collects every PNG in outDir into a single landscape PDF,
// one chart per page with the chart name as a caption. The experiment
// reports used to be assembled by hand from the loose images; this folds
// that step into the tool.
func BundlePDF(outDir, pdfPath string) error {
	images, err := filepath.Glob(filepath.Join(outDir, "*.png"))
	if err != nil {
		return fmt.Errorf("error listing %s: %w", outDir, err)
	}
	if len(images) == 0 {
		log.Printf("[report] no PNG images in %s, skipping bundle", outDir)
		return nil
	}
	sort.Strings(images)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	for _, image := range images {
		pdf.AddPage()
		name := filepath.Base(image)
		pdf.CellFormat(0, 8, name, "", 1, "C", false, 0, "")
		pdf.ImageOptions(image, 25, 20, 247, 0, false,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("error writing %s: %w", pdfPath, err)
	}
	log.Printf("[report] bundled %d charts into %s", len(images), pdfPath)
	return nil
}
