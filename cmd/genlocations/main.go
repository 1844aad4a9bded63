// Package main converts GeoNames dumps into the TSV tables embedded by the
// gazetteer. Run it whenever the upstream data changes:
//
//	genlocations -cities cities15000.txt -countries countryInfo.txt \
//	    -extra airports.tsv -extra divisions.tsv -out internal/gazetteer/data
//
// The output row order is load-bearing: the resolver takes the first
// matching row as the winner, so the sort below IS the tie-break policy.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type record struct {
	Name    string
	Aliases []string
	Country string
	Admin   string
	Kind    string
	TZ      string

	// sort keys, not written out
	important  bool
	population int64
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		citiesPath    = flag.String("cities", "cities15000.txt", "GeoNames cities dump")
		countriesPath = flag.String("countries", "countryInfo.txt", "GeoNames country info dump")
		outDir        = flag.String("out", "internal/gazetteer/data", "output directory")
		priority      = flag.String("priority", "US", "country whose entries win name ties")
		extras        stringList
	)
	flag.Var(&extras, "extra", "extra TSV already in output form (repeatable)")
	flag.Parse()

	if err := run(*citiesPath, *countriesPath, extras, *outDir, *priority); err != nil {
		fmt.Fprintln(os.Stderr, "genlocations:", err)
		os.Exit(1)
	}
}

func run(citiesPath, countriesPath string, extras []string, outDir, priority string) error {
	records, err := readCities(citiesPath)
	if err != nil {
		return err
	}
	for _, path := range extras {
		more, err := readExtra(path)
		if err != nil {
			return err
		}
		records = append(records, more...)
	}
	sortRecords(records, priority)

	countries, err := readCountries(countriesPath)
	if err != nil {
		return err
	}

	if err := writeLocations(filepath.Join(outDir, "locations.tsv"), records); err != nil {
		return err
	}
	return writeCountries(filepath.Join(outDir, "countries.tsv"), countries)
}

// readCities parses the GeoNames cities dump. Relevant columns: 2 ascii
// name, 7 feature code, 8 country, 10 admin1, 14 population, 17 timezone.
func readCities(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		r, ok := parseCityLine(sc.Text())
		if !ok {
			continue
		}
		records = append(records, r)
	}
	return records, sc.Err()
}

// parseCityLine converts one dump line into a record. It reports false for
// comments, short rows and names the gazetteer does not want: anything with
// a parenthetical qualifier.
func parseCityLine(line string) (record, bool) {
	if strings.HasPrefix(line, "#") {
		return record{}, false
	}
	fields := strings.Split(line, "\t")
	if len(fields) < 18 {
		return record{}, false
	}

	name := fields[2]
	if name == "" || strings.Contains(name, "(") {
		return record{}, false
	}

	admin := fields[10]
	if _, err := strconv.Atoi(admin); err == nil {
		// Numeric admin1 codes are GeoNames region numbers, not the
		// postal-style codes users type.
		admin = ""
	}

	population, _ := strconv.ParseInt(fields[14], 10, 64)

	return record{
		Name:       name,
		Country:    fields[8],
		Admin:      admin,
		Kind:       "city",
		TZ:         fields[17],
		important:  fields[7] == "PPLC",
		population: population,
	}, true
}

// readExtra loads a TSV already in output column order (airports and
// administrative divisions are maintained by hand, not derived from the
// cities dump).
func readExtra(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			return nil, fmt.Errorf("%s: want 6 columns, got %d", path, len(fields))
		}
		r := record{
			Name:    fields[0],
			Country: fields[2],
			Admin:   fields[3],
			Kind:    fields[4],
			TZ:      fields[5],
		}
		if fields[1] != "" {
			r.Aliases = strings.Split(fields[1], ";")
		}
		records = append(records, r)
	}
	return records, sc.Err()
}

// sortRecords orders records so that the first match for a name is the
// best one: capitals before ordinary cities, the priority country before
// others, then larger populations first.
func sortRecords(records []record, priority string) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
			return an < bn
		}
		if a.important != b.important {
			return a.important
		}
		if ap, bp := a.Country == priority, b.Country == priority; ap != bp {
			return ap
		}
		return a.population > b.population
	})
}

func readCountries(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	countries := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 || fields[0] == "" {
			continue
		}
		countries[fields[0]] = fields[4]
	}
	return countries, sc.Err()
}

func writeLocations(path string, records []record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, strings.Join(r.Aliases, ";"), r.Country, r.Admin, r.Kind, r.TZ)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func writeCountries(path string, countries map[string]string) error {
	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, code := range codes {
		fmt.Fprintf(w, "%s\t%s\n", code, countries[code])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
