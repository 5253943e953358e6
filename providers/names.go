package providers

const (
	// Identifier for MaxMind GeoLite2/GeoIP2 City databases.
	NameMaxMind = "maxmind"

	// Identifier for IP2Location BIN databases.
	NameIP2Location = "ip2location"

	// Identifier for SypexGeo city databases.
	NameSypex = "sypex"

	// Identifier for CSV databases of IP ranges.
	NameCSVDB = "csvdb"

	// Identifier for ipinfo.io.
	NameIPInfo = "ipinfo"

	// Identifier for a fixed in-memory table.
	NameStatic = "static"
)
