package source

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/TetuPalomydes/dam-map/pkg/region"
)

// regionLine matches `name(x1,y1)(x2,y2)`.
var regionLine = regexp.MustCompile(`^(.+?)\((-?\d+),(-?\d+)\)\((-?\d+),(-?\d+)\)`)

// ParseRegions reads one region per line. Lines that do not match the
// `name(x1,y1)(x2,y2)` form are ignored. Corners may be given in any order.
func ParseRegions(r io.Reader) ([]region.Region, error) {
	var out []region.Region
	sc := bufio.NewScanner(NewReader(r))
	for sc.Scan() {
		m := regionLine.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		var c [4]int
		ok := true
		for i := range c {
			v, err := strconv.Atoi(m[i+2])
			if err != nil {
				ok = false
				break
			}
			c[i] = v
		}
		if !ok {
			continue
		}
		out = append(out, region.New(strings.TrimSpace(m[1]), c[0], c[1], c[2], c[3]))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("source: read regions: %w", err)
	}
	return out, nil
}

// LoadRegions reads a region file.
func LoadRegions(path string) ([]region.Region, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRegions(f)
}
