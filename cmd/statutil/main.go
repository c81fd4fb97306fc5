package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/lomik/zapwriter"
	"github.com/spf13/viper"
	"github.com/valyala/fastjson"
	"go.uber.org/zap"

	"github.com/go-graphite/statutil/stats"
	"github.com/go-graphite/statutil/strutil"
)

var defaultLoggerConfig = zapwriter.Config{
	Logger:           "",
	File:             "stderr",
	Level:            "info",
	Encoding:         "console",
	EncodingTime:     "iso8601",
	EncodingDuration: "seconds",
}

type rangeConfig struct {
	Lower float64 `mapstructure:"lower"`
	Upper float64 `mapstructure:"upper"`
}

// config contains everything the tool needs for a run
var config = struct {
	Percentiles   []float64          `mapstructure:"percentiles"`
	ValidRange    *rangeConfig       `mapstructure:"validRange"`
	HighPrecision bool               `mapstructure:"highPrecision"`
	Describe      bool               `mapstructure:"describe"`
	Logger        []zapwriter.Config `mapstructure:"logger"`
}{
	Percentiles:   []float64{0.5, 0.9, 0.99},
	HighPrecision: true,

	Logger: []zapwriter.Config{defaultLoggerConfig},
}

// BuildVersion is defined at build and reported at startup
var BuildVersion = "(development version)"

type sampleResult struct {
	Name       string             `json:"name"`
	Error      string             `json:"error,omitempty"`
	Count      int                `json:"count,omitempty"`
	Min        *float64           `json:"min,omitempty"`
	Max        *float64           `json:"max,omitempty"`
	Thresholds map[string]float64 `json:"thresholds,omitempty"`
	Summary    *stats.Summary     `json:"summary,omitempty"`
}

func main() {
	err := zapwriter.ApplyConfig([]zapwriter.Config{defaultLoggerConfig})
	if err != nil {
		log.Fatal("Failed to initialize logger with default configuration")
	}
	logger := zapwriter.Logger("main")

	configFile := flag.String("config", "", "config file (yaml or toml)")
	inputFile := flag.String("input", "", "input JSON file (default: stdin)")
	outputFile := flag.String("output", "", "output JSON file (default: stdout)")
	envPrefix := flag.String("envprefix", "STATUTIL_", "Prefix for environment variables override")
	flag.Parse()

	if *envPrefix == "" {
		logger.Fatal("empty prefix is not supported due to possible collisions with OS environment variables")
	}

	if *configFile != "" {
		cfg, err := os.ReadFile(*configFile)
		if err != nil {
			logger.Fatal("unable to load config file",
				zap.Error(err),
			)
		}

		if strings.HasSuffix(*configFile, ".toml") {
			viper.SetConfigType("TOML")
		} else {
			viper.SetConfigType("YAML")
		}
		err = viper.ReadConfig(bytes.NewBuffer(cfg))
		if err != nil {
			logger.Fatal("failed to parse config",
				zap.String("config_path", *configFile),
				zap.Error(err),
			)
		}
	}

	viper.SetEnvPrefix(*envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		logger.Fatal("failed to parse config",
			zap.String("config_path", *configFile),
			zap.Error(err),
		)
	}

	err = zapwriter.ApplyConfig(config.Logger)
	if err != nil {
		logger.Fatal("failed to apply logger config",
			zap.Any("config", config.Logger),
			zap.Error(err),
		)
	}
	logger = zapwriter.Logger("main")

	for _, p := range config.Percentiles {
		if p < 0 || p > 1 {
			logger.Fatal("percentile outside [0, 1]",
				zap.Float64("percentile", p),
			)
		}
	}

	logger.Info("starting statutil",
		zap.String("build_version", BuildVersion),
		zap.Float64s("percentiles", config.Percentiles),
		zap.Bool("describe", config.Describe),
		zap.Bool("high_precision", config.HighPrecision),
	)

	samples, err := readSamples(*inputFile)
	if err != nil {
		logger.Fatal("failed to read input",
			zap.String("input", *inputFile),
			zap.Error(err),
		)
	}
	logger.Info("input parsed",
		zap.String("samples", humanize.Comma(int64(len(samples)))),
	)

	opt := &stats.Options{HighPrecision: config.HighPrecision}
	if config.ValidRange != nil {
		opt.ValidRange = &stats.Range{Lower: config.ValidRange.Lower, Upper: config.ValidRange.Upper}
	}

	accessLogger := zapwriter.Logger("access")
	results := make([]sampleResult, 0, len(samples))
	for _, s := range samples {
		results = append(results, processSample(accessLogger, s, opt))
	}
	sortResults(results)

	if err := writeResults(*outputFile, results); err != nil {
		logger.Fatal("failed to write output",
			zap.String("output", *outputFile),
			zap.Error(err),
		)
	}
}

type sample struct {
	name   string
	values []float64
}

// readSamples parses the input document, a JSON object mapping sample
// names to arrays of numbers.
func readSamples(path string) ([]sample, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	root, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	obj, err := root.Object()
	if err != nil {
		return nil, err
	}

	var samples []sample
	var badValue error
	obj.Visit(func(key []byte, v *fastjson.Value) {
		if badValue != nil {
			return
		}
		arr, err := v.Array()
		if err != nil {
			badValue = fmt.Errorf("sample %q: %w", string(key), err)
			return
		}
		values := make([]float64, 0, len(arr))
		for i, item := range arr {
			f, err := item.Float64()
			if err != nil {
				badValue = fmt.Errorf("sample %q, element %d: %w", string(key), i, err)
				return
			}
			values = append(values, f)
		}
		samples = append(samples, sample{name: string(key), values: values})
	})
	if badValue != nil {
		return nil, badValue
	}
	return samples, nil
}

func processSample(accessLogger *zap.Logger, s sample, opt *stats.Options) sampleResult {
	name := strutil.SanitizeMetricName(s.name)
	out := sampleResult{Name: name}

	if config.Describe {
		summary, err := stats.Describe(s.values, opt.ValidRange)
		if err != nil {
			out.Error = err.Error()
			accessLogger.Warn("sample skipped",
				zap.String("sample", name),
				zap.Error(err),
			)
			return out
		}
		out.Summary = &summary
		out.Count = summary.Count
		accessLogger.Info("sample described",
			zap.String("sample", name),
			zap.Int("valid_count", summary.Count),
		)
		return out
	}

	out.Thresholds = make(map[string]float64, len(config.Percentiles))
	for _, p := range config.Percentiles {
		res, err := stats.Estimate(s.values, p, opt)
		if err != nil {
			out.Error = err.Error()
			out.Thresholds = nil
			accessLogger.Warn("sample skipped",
				zap.String("sample", name),
				zap.Float64("percentile", p),
				zap.Error(err),
			)
			return out
		}
		out.Thresholds[percentileName(p)] = res.Threshold
		out.Count = res.Count
		out.Min = &res.Min
		out.Max = &res.Max
	}
	accessLogger.Info("sample processed",
		zap.String("sample", name),
		zap.Int("valid_count", out.Count),
	)
	return out
}

// percentileName renders 0.999 as "p99.9". Formatting through float32
// swallows the noise bits of p*100.
func percentileName(p float64) string {
	return "p" + strconv.FormatFloat(p*100, 'f', -1, 32)
}

func sortResults(results []sampleResult) {
	sort.Slice(results, func(i, j int) bool {
		return strutil.LessNatural(results[i].Name, results[j].Name)
	})
}

func writeResults(path string, results []sampleResult) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
