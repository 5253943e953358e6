package csvdb

import (
	"encoding/csv"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"
)

// RecordMaker converts a parsed CSV row into a Record.
type RecordMaker func([]string) (*Record, error)

// SkipReport counts rejected rows by the reason of rejection.
type SkipReport map[error]int

// Total is a number of all rejected rows.
func (s SkipReport) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}

	return total
}

// Fields presents the report for logging.
func (s SkipReport) Fields() log.Fields {
	fields := log.Fields{}
	for reason, count := range s {
		fields[reason.Error()] = count
	}

	return fields
}

// CSVReader reads IP range databases row by row. Rows which RecordMaker
// rejects do not stop reading: Read returns nil Record and nil error for
// them and the reason goes to the skip report.
type CSVReader struct {
	reader     *csv.Reader
	makeRecord RecordMaker
	report     SkipReport
}

// Skipped returns a number of rows which were rejected so far.
func (cr *CSVReader) Skipped() int {
	return cr.report.Total()
}

// Report returns rejected rows grouped by reason: ErrNoCoordinates,
// ErrIncorrectIP, ErrIncorrectCoordinates, ErrColumnsCount or anything
// else a custom RecordMaker returns.
func (cr *CSVReader) Report() SkipReport {
	return cr.report
}

func (cr *CSVReader) Read() (*Record, error) {
	data, err := cr.next()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Annotate(err, "Cannot read new record")
	}

	record, err := cr.makeRecord(data)
	if err != nil {
		line, _ := cr.reader.FieldPos(0)
		log.WithFields(log.Fields{
			"line": line,
			"data": data,
			"err":  err.Error(),
		}).Debug("Skip database row.")
		cr.report[errors.Cause(err)]++
		return nil, nil
	}

	return record, nil
}

func (cr *CSVReader) next() (data []string, err error) {
	for err == nil && len(data) == 0 {
		data, err = cr.reader.Read()
	}

	return
}

// NewCSVReader reads rows of any width; width is checked by RecordMaker.
func NewCSVReader(filefp io.Reader, makeRecord RecordMaker) *CSVReader {
	reader := csv.NewReader(filefp)
	reader.ReuseRecord = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	return &CSVReader{
		reader:     reader,
		makeRecord: makeRecord,
		report:     SkipReport{},
	}
}
