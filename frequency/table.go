// Package frequency reads observation lists: one "<count> <ip>" record
// per line, as produced by `sort | uniq -c` over access logs.
package frequency

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/juju/errors"
)

// MaxLineLength is the longest line which is still parsed. Longer lines
// are reported as malformed.
const MaxLineLength = 4096

// Table maps IP address strings to the number of times they were seen.
type Table map[string]int

// IPs returns the keys of the table in a stable order.
func (t Table) IPs() []string {
	ips := make([]string, 0, len(t))
	for ip := range t {
		ips = append(ips, ip)
	}
	sort.Strings(ips)

	return ips
}

// Parse builds a Table out of the given reader. Malformed lines are
// skipped; each of them yields an error in the returned slice which
// can be matched with errors.Cause against ErrMalformedLine. If the
// same IP occurs several times, the last line wins.
func Parse(reader io.Reader) (Table, []error, error) {
	table := Table{}
	diagnostics := []error{}
	buffered := bufio.NewReader(reader)
	lineNumber := 0

	for {
		line, tooLong, err := readLine(buffered)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, diagnostics, errors.Annotate(err, "Cannot read input")
		}
		lineNumber++

		ip, count := "", 0
		if tooLong {
			err = ErrMalformedLine
		} else {
			ip, count, err = parseLine(line)
		}

		if err != nil {
			log.WithFields(log.Fields{
				"line":   line,
				"number": lineNumber,
			}).Warn("Double-check line.")
			diagnostics = append(diagnostics, errors.Annotatef(err, "line %d", lineNumber))
			continue
		}

		table[ip] = count
	}

	return table, diagnostics, nil
}

// readLine reads a line without its end of line. Lines longer than
// MaxLineLength are consumed completely, but only their beginning is
// returned.
func readLine(reader *bufio.Reader) (string, bool, error) {
	line := []byte{}
	tooLong := false
	started := false

	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF && started {
				return string(line), tooLong, nil
			}
			return "", false, err
		}
		started = true

		if len(line)+len(chunk) > MaxLineLength {
			tooLong = true
			chunk = chunk[:MaxLineLength-len(line)]
		}
		line = append(line, chunk...)

		if !isPrefix {
			return string(line), tooLong, nil
		}
	}
}

// Load opens path on the given filesystem and parses it.
func Load(fs afero.Fs, path string) (Table, []error, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, nil, errors.Annotatef(err, "Cannot open input file %s", path)
	}
	defer file.Close() // nolint

	return Parse(file)
}

func parseLine(line string) (string, int, error) {
	chunks := strings.Fields(line)
	if len(chunks) != 2 {
		return "", 0, ErrMalformedLine
	}

	count, err := strconv.Atoi(chunks[0])
	if err != nil || count < 0 {
		return "", 0, ErrMalformedLine
	}

	return chunks[1], count, nil
}
