// Package report renders the experiment report charts. Every renderer is
// a load/compute/draw/save sequence over an explicit figure; there is no
// shared mutable state between charts.
package report

// Options carries the output settings every renderer needs.
type Options struct {
	OutDir   string
	Formats  []string
	Topology string
}

func formatsOrPNG(formats []string) []string {
	if len(formats) == 0 {
		return []string{"png"}
	}
	return formats
}
