// Package bmfont reads AngelCode BMFont text descriptors and lays out strings as textured
// quads against the glyph atlas they describe. Nothing in here touches the GPU.
package bmfont

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/memmaker/bitmaptext/engine/util"
	"github.com/pkg/errors"
)

// Glyph is one "char" record of a descriptor. X, Y, Width and Height locate the glyph in
// the atlas (pixels, top-left origin). XOffset and YOffset place it relative to the pen,
// XAdvance is how far the pen moves afterwards.
type Glyph struct {
	ID       int
	X, Y     int
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	XAdvance int
}

// Empty reports whether the glyph covers no atlas pixels.
func (g Glyph) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// Descriptor is the parsed content of a .fnt file.
type Descriptor struct {
	// Glyphs in file order, duplicates removed (first wins).
	Glyphs []Glyph

	// From the "common" line, zero if absent.
	LineHeight int
	Base       int
	ScaleW     int
	ScaleH     int

	// Atlas file names from "page" lines, indexed by page id.
	Pages []string
}

// fields of a char record, in the order they are read
const charFieldCount = 8

// LoadDescriptor opens and parses the descriptor at path.
func LoadDescriptor(path string) (*Descriptor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open font descriptor %s", path)
	}
	defer file.Close()
	desc, err := ParseDescriptor(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read font descriptor %s", path)
	}
	return desc, nil
}

// ParseDescriptor reads a whitespace-tokenized descriptor.
//
// Every "char" token is followed by eight key=value tokens, read by position as id, x, y,
// w, h, xoffset, yoffset, xadvance. Keys are not checked. Values that are not numbers
// become 0, the way atoi treats them. Any other token is skipped, except for the keys of
// "common" and "page" lines, which fill the header fields.
//
// The only error returned is a failure of r itself.
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	scanner.Split(bufio.ScanWords)

	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	desc := &Descriptor{}
	seen := make(map[int]bool)
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "char":
			var fields [charFieldCount]int
			for f := 0; f < charFieldCount; f++ {
				if i+1+f < len(tokens) {
					fields[f] = atoi(valueOf(tokens[i+1+f]))
				}
			}
			glyph := Glyph{
				ID:       fields[0],
				X:        fields[1],
				Y:        fields[2],
				Width:    max(fields[3], 0),
				Height:   max(fields[4], 0),
				XOffset:  fields[5],
				YOffset:  fields[6],
				XAdvance: fields[7],
			}
			if seen[glyph.ID] {
				util.LogFontDebug(fmt.Sprintf("duplicate char id %d ignored", glyph.ID))
				continue
			}
			seen[glyph.ID] = true
			desc.Glyphs = append(desc.Glyphs, glyph)
		case "common":
			for _, token := range headerTokens(tokens[i+1:]) {
				key, value := splitPair(token)
				switch key {
				case "lineHeight":
					desc.LineHeight = atoi(value)
				case "base":
					desc.Base = atoi(value)
				case "scaleW":
					desc.ScaleW = atoi(value)
				case "scaleH":
					desc.ScaleH = atoi(value)
				}
			}
		case "page":
			id, file := 0, ""
			for _, token := range headerTokens(tokens[i+1:]) {
				key, value := splitPair(token)
				switch key {
				case "id":
					id = atoi(value)
				case "file":
					file = strings.Trim(value, `"`)
				}
			}
			if id >= 0 && id < 1024 {
				for len(desc.Pages) <= id {
					desc.Pages = append(desc.Pages, "")
				}
				desc.Pages[id] = file
			}
		}
	}
	return desc, nil
}

// headerTokens returns the key=value tokens that directly follow a line tag.
func headerTokens(tokens []string) []string {
	for i, token := range tokens {
		if !strings.Contains(token, "=") {
			return tokens[:i]
		}
	}
	return tokens
}

// valueOf returns what follows the first '=' of a key=value token, or the whole token.
func valueOf(token string) string {
	if i := strings.IndexByte(token, '='); i >= 0 {
		return token[i+1:]
	}
	return token
}

func splitPair(token string) (key, value string) {
	key, value, _ = strings.Cut(token, "=")
	return key, value
}

// atoi converts the leading decimal number of s, ignoring whatever follows. Anything that
// does not start with a number yields 0.
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	negative := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			break
		}
	}
	if negative {
		return -n
	}
	return n
}
