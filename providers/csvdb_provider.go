package providers

import (
	"bufio"
	"compress/gzip"
	"io"
	"net"
	"os"
	"strings"

	"github.com/asergeyev/nradix"
	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"

	"github.com/jloeber/ipmapper/csvdb"
	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

const csvdbInternCacheSize = 1024

// CSVDB resolves addresses with a database of IP ranges in CSV format,
// plain or gzipped. Ranges are split into CIDRs and kept in a radix
// tree.
type CSVDB struct {
	db *nradix.Tree
}

func (cdp *CSVDB) Name() string {
	return NameCSVDB
}

func (cdp *CSVDB) Lookup(ip net.IP) (geo.Coordinate, error) {
	if cdp.db == nil {
		return geo.Coordinate{}, ErrDatabaseIsNotReadyYet
	}

	ip4 := ip.To4()
	if ip4 == nil {
		return geo.Coordinate{}, ErrNoMatch
	}

	data, err := cdp.db.FindCIDR(ip4.String() + "/32")
	if err != nil {
		return geo.Coordinate{}, errors.Annotatef(err, "Cannot lookup %s", ip)
	}

	coord, ok := data.(*geo.Coordinate)
	if !ok || coord == nil {
		return geo.Coordinate{}, ErrNoMatch
	}

	return *coord, nil
}

func (cdp *CSVDB) Shutdown() {
	cdp.db = nil
}

// NewCSVDB reads the whole database into memory. Files with .gz
// extension are gunzipped on the fly.
func NewCSVDB(path string, makeRecord csvdb.RecordMaker) (*CSVDB, error) {
	rawFile, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open database file %s", path)
	}
	defer rawFile.Close() // nolint

	var source io.Reader = bufio.NewReader(rawFile)
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzipFile, err := gzip.NewReader(source)
		if err != nil {
			return nil, errors.Annotate(err, "Incorrect gzip archive")
		}
		defer gzipFile.Close() // nolint
		source = gzipFile
	}

	tree, err := createCSVDBTree(source, makeRecord)
	if err != nil {
		return nil, err
	}

	return &CSVDB{db: tree}, nil
}

func createCSVDBTree(source io.Reader, makeRecord csvdb.RecordMaker) (*nradix.Tree, error) {
	reader := csvdb.NewCSVReader(source, makeRecord)
	tree := nradix.NewTree(0)
	interned, _ := lru.New(csvdbInternCacheSize)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Annotate(err, "Error during parsing CSV")
		}
		if record == nil {
			continue
		}

		// neighbouring ranges usually share a city, so share a pointer too
		var coord *geo.Coordinate
		if value, ok := interned.Get(record.Coordinate); ok {
			coord = value.(*geo.Coordinate)
		} else {
			coord = &geo.Coordinate{
				Latitude:  record.Coordinate.Latitude,
				Longitude: record.Coordinate.Longitude,
			}
			interned.Add(record.Coordinate, coord)
		}

		subnets, err := record.GetSubnets()
		if err != nil {
			log.WithFields(log.Fields{
				"startIP":  record.StartIP,
				"finishIP": record.FinishIP,
				"err":      err,
			}).Warn("Cannot parse ip range")
			continue
		}

		for _, cidr := range subnets {
			if err := addOrSetCIDR(tree, cidr, coord); err != nil {
				return nil, err
			}
		}
	}

	report := reader.Report()
	logger := log.WithFields(report.Fields())
	if invalid := report.Total() - report[csvdb.ErrNoCoordinates]; invalid > 0 {
		logger.Warnf("CSV database is loaded, %d malformed rows skipped.", invalid)
	} else {
		logger.Debug("CSV database is loaded.")
	}

	return tree, nil
}

func addOrSetCIDR(tree *nradix.Tree, cidr string, coord *geo.Coordinate) error {
	errAdd := tree.AddCIDR(cidr, coord)
	if errAdd == nil {
		return nil
	}
	if errAdd != nradix.ErrNodeBusy {
		return errors.Annotate(errAdd, "Incorrect IP range")
	}

	log.WithFields(log.Fields{
		"cidr": cidr,
	}).Debug("CIDR already exists. Set the new value.")

	if errSet := tree.SetCIDR(cidr, coord); errSet != nil {
		return errors.Annotate(errSet, "Incorrect IP range")
	}

	return nil
}
