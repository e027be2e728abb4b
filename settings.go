package main

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"wow_check/analysis"
)

// Settings are the non-secret service knobs. Secrets stay in the
// environment (.env): WCL_OAUTH2_CLIENT_ID, WCL_OAUTH2_CLIENT_SECRET,
// SENTRY_DSN, GOOGLE_RECAPTCHA_V3_SECRET.
type Settings struct {
	Listen    string `koanf:"listen"`
	APIURL    string `koanf:"api_url"`
	TokenURL  string `koanf:"token_url"`
	CacheDir  string `koanf:"cache_dir"`
	OutDir    string `koanf:"out_dir"`
	PublicDir string `koanf:"public_dir"`
	LogLevel  string `koanf:"log_level"`
	LogDir    string `koanf:"log_dir"`
	Encounter string `koanf:"encounter"`
}

func defaultSettings() *Settings {
	return &Settings{
		Listen:    "127.0.0.1:5555",
		CacheDir:  "./cached-json",
		OutDir:    "./charts",
		PublicDir: "./frontend/public/",
		LogLevel:  "info",
		Encounter: "sprocketmonger",
	}
}

// loadSettings layers defaults, an optional yaml file and WOW_CHECK_*
// environment variables, lowest to highest.
func loadSettings(path string) (*Settings, error) {
	s := defaultSettings()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "settings file %s", path)
		}
	}

	envProvider := env.Provider("WOW_CHECK_", ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, "WOW_CHECK_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "settings environment")
	}

	if err := k.UnmarshalWithConf("", s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "settings unmarshal")
	}

	if s.Listen == "" {
		return nil, errors.New("listen address must not be empty")
	}

	return s, nil
}

// loadReports reads the officer-maintained session list, one report per
// row as `label,code` (bare codes allowed), oldest first. Lines starting
// with # are comments.
func loadReports(path string) ([]analysis.Report, error) {
	fs, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer fs.Close()

	// spreadsheet exports tend to carry a BOM
	sr, _ := utfbom.Skip(fs)

	cr := csv.NewReader(sr)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var reports []analysis.Report
	for {
		d, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}

		if len(d) == 1 {
			if code := strings.TrimSpace(d[0]); code != "" {
				reports = append(reports, analysis.Report{Code: code})
			}
			continue
		}

		code := strings.TrimSpace(d[1])
		if code == "" {
			continue
		}
		reports = append(reports, analysis.Report{
			Label: strings.TrimSpace(d[0]),
			Code:  code,
		})
	}

	if len(reports) == 0 {
		return nil, errors.Errorf("%s: no report codes", path)
	}

	return reports, nil
}
