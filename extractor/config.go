package extractor

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

//ElasticAuth credentials for the ElasticSearch host
type ElasticAuth struct {
	Username, Password string
}

//Configuration stores the configuration parameters required for the application
type Configuration struct {
	LogPath  string
	SDFPath  string
	Progress bool
	// Properties are the SD data fields turned into per-atom labels
	Properties    []string
	ParseStereo   bool
	SkipMalformed bool
	Workers       int
	// SetupPath is a YAML ranges file, RangesOracleConn reads them from Oracle instead
	SetupPath        string
	RangesOracleConn string
	RangesQuery      string
	ElasticHost      string
	BulkLimit        int
	Index            string
	Type             string
	MaxBulkCalls     int
	ElasticAuth      ElasticAuth
}

func defaults() Configuration {
	return Configuration{
		LogPath:      ".",
		Workers:      1,
		Index:        "sdf",
		Type:         "molecule",
		BulkLimit:    1000,
		MaxBulkCalls: 4,
	}
}

//LoadConfig opening a yaml config file (config.yaml)
func LoadConfig(c string) (*Configuration, error) {

	t := defaults()
	var fn string

	if len(c) > 0 {
		fn = c
	} else {
		fn = "config.yaml"
	}

	fmt.Printf("Using config path: %s \n", fn)

	data, err := ioutil.ReadFile(fn)
	if err != nil {
		return &t, err
	}

	err = yaml.Unmarshal(data, &t)
	if err != nil {
		return &t, err
	}

	return &t, t.Validate()
}

//Validate checks the values that cannot be fixed later by flags
func (c *Configuration) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be a number higher than 0, got %d", c.Workers)
	}
	if len(c.Properties) > 0 && len(c.SetupPath) == 0 && len(c.RangesOracleConn) == 0 {
		return fmt.Errorf("properties %v need a setuppath or a rangesoracleconn", c.Properties)
	}
	return nil
}
