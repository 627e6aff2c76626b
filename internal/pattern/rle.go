package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
)

// ErrMalformedRLE indicates RLE input that cannot be decoded.
var ErrMalformedRLE = errors.New("pattern: malformed RLE")

// Decoded is the result of reading an RLE document.
type Decoded struct {
	Title   string
	Pattern *Pattern
}

// ParseRLE decodes a run-length encoded Life pattern
// (https://conwaylife.com/wiki/Run_Length_Encoded). A leading "#N" line sets
// the title, other '#' lines are ignored. Tags other than b, o and $ are
// read as dead cells; cells past the declared width are dropped.
func ParseRLE(r io.Reader) (*Decoded, error) {
	sc := bufio.NewScanner(r)

	var (
		title  string
		header string
		body   strings.Builder
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "#"):
			if strings.HasPrefix(line, "#N ") && title == "" {
				title = strings.TrimSpace(line[3:])
			}
		case header == "":
			header = line
		default:
			body.WriteString(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if header == "" {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedRLE)
	}

	w, h, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	p, err := New(w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRLE, err)
	}

	data := body.String()
	end := strings.IndexByte(data, '!')
	if end < 0 {
		return nil, fmt.Errorf("%w: missing '!' terminator", ErrMalformedRLE)
	}
	data = strings.ToLower(data[:end])

	row, col, run := 0, 0, 0
	for _, ch := range data {
		if ch >= '0' && ch <= '9' {
			run = run*10 + int(ch-'0')
			continue
		}
		n := max(run, 1)
		run = 0
		switch ch {
		case '$':
			row, col = row+n, 0
		case 'o':
			for i := 0; i < n; i++ {
				if row < h && col < w {
					p.cells[row*w+col] = life.Alive
				}
				col++
			}
		default:
			col += n
		}
	}

	return &Decoded{Title: title, Pattern: p}, nil
}

func parseHeader(header string) (int, int, error) {
	var w, h int
	var haveW, haveH bool
	for _, field := range strings.Split(header, ",") {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		switch strings.TrimSpace(key) {
		case "x":
			if err != nil {
				return 0, 0, fmt.Errorf("%w: bad width %q", ErrMalformedRLE, val)
			}
			w, haveW = n, true
		case "y":
			if err != nil {
				return 0, 0, fmt.Errorf("%w: bad height %q", ErrMalformedRLE, val)
			}
			h, haveH = n, true
		}
	}
	if !haveW || !haveH {
		return 0, 0, fmt.Errorf("%w: header %q lacks x or y", ErrMalformedRLE, header)
	}
	return w, h, nil
}
