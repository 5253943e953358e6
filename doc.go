// Ipmapper draws a frequency map of IP addresses.
//
// Input is a text file where each line is a count and an IP address
// separated by whitespace, like an output of `sort | uniq -c`:
//
//	5 8.8.8.8
//	12 2001:db8::1
//
// Every address is located with a chain of geolocation providers
// (MaxMind, IP2Location, SypexGeo, CSV range databases, ipinfo.io or
// a static table from the config). Points are projected with Robinson
// projection and drawn as circles on a set of base maps. Radius of the
// circle depends on the count.
//
// By default two maps are rendered: BW_<timestamp>.png and
// Color_<timestamp>.png. Both share the same timestamp.
//
// # Configuration
//
// Config file is TOML and optional. Defaults fit bundled
// maps/Robinson_BW.png and maps/Robinson_Color.png. Please check
// config.Default for the values.
package main
