// Package met provides match equity tables: the chance of winning a match
// from a given score.
package met

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// MaxAway is the largest points-to-go the tables hold. Longer matches are
// clamped.
const MaxAway = 64

// Table is a match equity table.
type Table struct {
	Name   string
	Length int // native length of the table

	// pre[i][j] is the equity of a side needing i+1 points against a side
	// needing j+1, before the Crawford game.
	pre [MaxAway][MaxAway]float64
	// post[i] is the equity of the trailer needing i+1 points once the
	// leader is 1-away and the Crawford game has been played.
	post [MaxAway]float64
}

type xmlMET struct {
	XMLName      xml.Name          `xml:"met"`
	Info         xmlInfo           `xml:"info"`
	PreCrawford  xmlPreCrawford    `xml:"pre-crawford-table"`
	PostCrawford []xmlPostCrawford `xml:"post-crawford-table"`
}

type xmlInfo struct {
	Name   string `xml:"name"`
	Length int    `xml:"length"`
}

type xmlPreCrawford struct {
	Rows []xmlRow `xml:"row"`
}

type xmlPostCrawford struct {
	Player string `xml:"player,attr"`
	Row    xmlRow `xml:"row"`
}

type xmlRow struct {
	Values []string `xml:"me"`
}

// LoadXML reads a gnubg-style XML match equity table.
func LoadXML(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open MET file: %w", err)
	}
	defer f.Close()
	return ParseXML(f)
}

// ParseXML parses a gnubg-style XML match equity table. Missing post-Crawford
// rows are derived from the free-double approximation used by Default.
func ParseXML(r io.Reader) (*Table, error) {
	var doc xmlMET
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse MET XML: %w", err)
	}

	t := Default()
	t.Name = doc.Info.Name
	t.Length = doc.Info.Length

	for i, row := range doc.PreCrawford.Rows {
		if i >= MaxAway {
			break
		}
		for j, val := range row.Values {
			if j >= MaxAway {
				break
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse MET value [%d][%d]: %w", i, j, err)
			}
			t.pre[i][j] = f
		}
	}

	// Tables are symmetric between players, so the first post-Crawford row
	// serves both.
	for _, pc := range doc.PostCrawford {
		if pc.Player != "" && pc.Player != "0" && pc.Player != "both" {
			continue
		}
		for j, val := range pc.Row.Values {
			if j >= MaxAway {
				break
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse post-Crawford value [%d]: %w", j, err)
			}
			t.post[j] = f
		}
		break
	}
	return t, nil
}

// Default returns an approximate table: pre-Crawford equity is the
// opponent's share of the points still needed, and post-Crawford the
// trailer doubles every game so needs ceil(away/2) straight wins.
func Default() *Table {
	t := &Table{Name: "Default MET", Length: MaxAway}
	for i := range MaxAway {
		for j := range MaxAway {
			t.pre[i][j] = float64(j+1) / float64(i+j+2)
		}
		t.post[i] = math.Pow(0.5, math.Ceil(float64(i+1)/2))
	}
	return t
}

func clamp(away int) int {
	return min(away, MaxAway)
}

func (t *Table) postCrawford(away int) float64 {
	if away <= 0 {
		return 1
	}
	return t.post[clamp(away)-1]
}

// Equity returns the chance that a side needing away points wins against
// a side needing oppAway. crawford marks the Crawford game itself, played
// without the cube when one side is 1-away.
func (t *Table) Equity(away, oppAway int, crawford bool) float64 {
	switch {
	case away <= 0:
		return 1
	case oppAway <= 0:
		return 0
	case oppAway == 1 && away > 1:
		if crawford {
			// Cubeless game: a win leaves the trailer post-Crawford.
			return 0.5 * t.postCrawford(away-1)
		}
		return t.postCrawford(away)
	case away == 1 && oppAway > 1:
		return 1 - t.Equity(oppAway, away, crawford)
	default:
		return t.pre[clamp(away)-1][clamp(oppAway)-1]
	}
}
