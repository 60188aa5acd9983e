package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chembl/sdf2index/extractor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version   string
	buildDate string
	logger    *zap.SugaredLogger
	config    *extractor.Configuration
)

func logInit(d bool, logPath string) *os.File {
	fn := "sdf2index.log"
	path := filepath.Join(logPath, fn)
	fmt.Println("Log path ", path)
	// Open file for writing
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		panic(err)
	}

	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(pe)

	level := zap.InfoLevel
	if d {
		level = zap.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, zapcore.AddSync(file), level),
	)

	l := zap.New(core)

	logger = l.Sugar()

	return file
}

func main() {

	cn := flag.String("config", "", "Config file path, must be YAML")
	d := flag.Bool("d", false, "Sets up the log level to debug, keep in mind logging will have an impact on the performance")
	v := flag.Bool("v", false, "Returns the binary version and built date info")
	sdf := flag.String("sdf", "", "SD file to read, overrides sdfpath from the config")
	eh := flag.String("eshost", "", "ElasticSearch host, Example: http://0.0.0.0:9200")
	flag.Parse()

	if *v {
		fmt.Printf("Version: %s Build Date: %s \n", version, buildDate)
		return
	}

	var err error

	config, err = extractor.LoadConfig(*cn)
	if err != nil {
		fmt.Println(err)
		panic("Couldn't load config.yaml file")
	}

	f := logInit(*d, config.LogPath)
	defer f.Close()

	if len(*sdf) > 0 {
		config.SDFPath = *sdf
	} else if len(config.SDFPath) <= 0 {
		m := "Please provide an SD file"
		logger.Panic(m)
	}

	if len(*eh) > 0 {
		config.ElasticHost = *eh
	}
	if len(config.ElasticHost) > 0 {
		m := fmt.Sprintf("Elastic host %s", config.ElasticHost)
		logger.Info(m)
		fmt.Println(m)
	}

	greeting()

	if err := extractor.Init(logger, config); err != nil {
		logger.Error("Run failed ", err)
		fmt.Println(err)
		f.Close()
		os.Exit(1)
	}
}

func greeting() {
	logger.Info("--------------Init program--------------")
	logger.Info(fmt.Sprintf("Version: %s Build Date: %s", version, buildDate))
	logger.Infow(
		"Configuration",
		"SD file",
		config.SDFPath,
		"Properties",
		config.Properties,
		"Stereo",
		config.ParseStereo,
		"Skip malformed",
		config.SkipMalformed,
		"Workers",
		config.Workers,
		"ES index",
		config.Index,
		"Bulk limit",
		config.BulkLimit,
		"Maximum Bulk calls",
		config.MaxBulkCalls,
	)

	fmt.Println("--------------Init program--------------")
	fmt.Printf("Version: %s Build Date: %s \n", version, buildDate)
	fmt.Printf("Reading %s \n", config.SDFPath)
}
